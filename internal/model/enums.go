package model

// enums.go: Closed tagged variants of the entity model.
//
// Every enum is a string type serialized as its tag. Decoding an unknown tag
// is a SchemaError; see document.go.

import (
	"gopkg.in/yaml.v3"
)

// InterfaceKind distinguishes the two interface flavours.
type InterfaceKind string

const (
	SenderReceiver InterfaceKind = "sender_receiver"
	ClientServer   InterfaceKind = "client_server"
)

// PortDirection is the publishing (provided) or consuming (required) end.
type PortDirection string

const (
	Provided PortDirection = "provided"
	Required PortDirection = "required"
)

// AppDataCategory selects the category-specific payload of an ADT.
type AppDataCategory string

const (
	CategoryValue     AppDataCategory = "value"
	CategoryArray     AppDataCategory = "array"
	CategoryStructure AppDataCategory = "structure"
	CategoryEnum      AppDataCategory = "enum"
)

// ArgumentDirection is the data-flow direction of an operation argument.
type ArgumentDirection string

const (
	In    ArgumentDirection = "in"
	Out   ArgumentDirection = "out"
	InOut ArgumentDirection = "inout"
)

// RunnableTrigger is the activation event of a runnable.
type RunnableTrigger string

const (
	TriggerTiming           RunnableTrigger = "timing"
	TriggerOperationInvoked RunnableTrigger = "operation_invoked"
	TriggerDataReceived     RunnableTrigger = "data_received"
)

// BaseType is a fixed-width primitive of an implementation type.
type BaseType string

const (
	Uint8   BaseType = "uint8"
	Uint16  BaseType = "uint16"
	Uint32  BaseType = "uint32"
	Uint64  BaseType = "uint64"
	Int8    BaseType = "int8"
	Int16   BaseType = "int16"
	Int32   BaseType = "int32"
	Int64   BaseType = "int64"
	Float32 BaseType = "float32"
	Float64 BaseType = "float64"
	Boolean BaseType = "boolean"
)

// BaseTypes lists every base type in declaration order.
var BaseTypes = []BaseType{
	Uint8, Uint16, Uint32, Uint64,
	Int8, Int16, Int32, Int64,
	Float32, Float64, Boolean,
}

func (k InterfaceKind) Valid() bool {
	switch k {
	case SenderReceiver, ClientServer:
		return true
	}
	return false
}

func (d PortDirection) Valid() bool {
	switch d {
	case Provided, Required:
		return true
	}
	return false
}

func (c AppDataCategory) Valid() bool {
	switch c {
	case CategoryValue, CategoryArray, CategoryStructure, CategoryEnum:
		return true
	}
	return false
}

func (d ArgumentDirection) Valid() bool {
	switch d {
	case In, Out, InOut:
		return true
	}
	return false
}

func (t RunnableTrigger) Valid() bool {
	switch t {
	case TriggerTiming, TriggerOperationInvoked, TriggerDataReceived:
		return true
	}
	return false
}

func (b BaseType) Valid() bool {
	for _, v := range BaseTypes {
		if b == v {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// YAML decoding: unknown tags fail fast
// ---------------------------------------------------------------------------

func decodeTag(node *yaml.Node, kind string, valid func(string) bool) (string, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		return "", &SchemaError{Field: kind, Line: node.Line, Msg: err.Error()}
	}
	if !valid(s) {
		return "", &SchemaError{Field: kind, Line: node.Line, Msg: "unknown tag " + quote(s)}
	}
	return s, nil
}

func (k *InterfaceKind) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeTag(node, "interface_type", func(s string) bool { return InterfaceKind(s).Valid() })
	if err != nil {
		return err
	}
	*k = InterfaceKind(s)
	return nil
}

func (d *PortDirection) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeTag(node, "port direction", func(s string) bool { return PortDirection(s).Valid() })
	if err != nil {
		return err
	}
	*d = PortDirection(s)
	return nil
}

func (c *AppDataCategory) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeTag(node, "category", func(s string) bool { return AppDataCategory(s).Valid() })
	if err != nil {
		return err
	}
	*c = AppDataCategory(s)
	return nil
}

func (d *ArgumentDirection) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeTag(node, "argument direction", func(s string) bool { return ArgumentDirection(s).Valid() })
	if err != nil {
		return err
	}
	*d = ArgumentDirection(s)
	return nil
}

func (t *RunnableTrigger) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeTag(node, "trigger", func(s string) bool { return RunnableTrigger(s).Valid() })
	if err != nil {
		return err
	}
	*t = RunnableTrigger(s)
	return nil
}

func (b *BaseType) UnmarshalYAML(node *yaml.Node) error {
	s, err := decodeTag(node, "base_type", func(s string) bool { return BaseType(s).Valid() })
	if err != nil {
		return err
	}
	*b = BaseType(s)
	return nil
}
