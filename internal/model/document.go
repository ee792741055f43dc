package model

// document.go: YAML document codec.
//
// Marshal/Unmarshal are inverse up to field presence. On decode:
//   - absent optional fields take their documented defaults
//     (factor=1.0, offset=0.0, init_value="0", array_size=1, category=value,
//     base_type=uint8, period_ms=10, ...);
//   - an absent or empty uid is replaced by a fresh UID;
//   - an unknown enum tag or a missing required key is a SchemaError.
//
// Each entity decodes through a local "plain" type that has no
// UnmarshalYAML method, pre-filled with defaults, so only keys present in
// the document override them.

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RequireKeys fails with a SchemaError unless node is a mapping carrying
// every key in keys.
func RequireKeys(node *yaml.Node, what string, keys ...string) error {
	if node.Kind != yaml.MappingNode {
		return &SchemaError{Field: what, Line: node.Line, Msg: "expected a mapping"}
	}
	for _, k := range keys {
		found := false
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == k {
				found = true
				break
			}
		}
		if !found {
			return &SchemaError{Field: what, Line: node.Line, Msg: "missing required key " + quote(k)}
		}
	}
	return nil
}

func (c *CompuMethod) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "compu method", "name"); err != nil {
		return err
	}
	type plain CompuMethod
	v := plain{Factor: 1.0, Offset: 0.0}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*c = CompuMethod(v)
	c.UID = orNewUID(c.UID)
	return nil
}

func (t *ApplicationDataType) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "application data type", "name"); err != nil {
		return err
	}
	type plain ApplicationDataType
	v := plain{Category: CategoryValue, InitValue: "0", ArraySize: 1}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*t = ApplicationDataType(v)
	t.UID = orNewUID(t.UID)
	return nil
}

func (m *StructMember) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "struct member", "name", "type_uid"); err != nil {
		return err
	}
	type plain StructMember
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*m = StructMember(v)
	return nil
}

func (l *EnumLiteral) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "enum literal", "name", "value"); err != nil {
		return err
	}
	type plain EnumLiteral
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*l = EnumLiteral(v)
	return nil
}

func (t *ImplementationDataType) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "implementation data type", "name"); err != nil {
		return err
	}
	type plain ImplementationDataType
	v := plain{BaseType: Uint8, ArraySize: 1}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*t = ImplementationDataType(v)
	t.UID = orNewUID(t.UID)
	return nil
}

func (m *DataTypeMapping) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "data type mapping", "app_type_uid", "impl_type_uid"); err != nil {
		return err
	}
	type plain DataTypeMapping
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*m = DataTypeMapping(v)
	m.UID = orNewUID(m.UID)
	return nil
}

func (d *DataElement) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "data element", "name"); err != nil {
		return err
	}
	type plain DataElement
	v := plain{BaseType: Uint8, InitValue: "0"}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*d = DataElement(v)
	d.UID = orNewUID(d.UID)
	return nil
}

func (a *Argument) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "argument", "name"); err != nil {
		return err
	}
	type plain Argument
	v := plain{Direction: In, BaseType: Uint8}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*a = Argument(v)
	a.UID = orNewUID(a.UID)
	return nil
}

func (op *Operation) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "operation", "name"); err != nil {
		return err
	}
	type plain Operation
	v := plain{ReturnBaseType: Uint8}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*op = Operation(v)
	op.UID = orNewUID(op.UID)
	return nil
}

func (i *Interface) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "interface", "name"); err != nil {
		return err
	}
	type plain Interface
	v := plain{Kind: SenderReceiver}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*i = Interface(v)
	i.UID = orNewUID(i.UID)
	return nil
}

func (p *Port) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "port", "name"); err != nil {
		return err
	}
	type plain Port
	v := plain{Direction: Required}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Port(v)
	p.UID = orNewUID(p.UID)
	return nil
}

func (r *Runnable) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "runnable", "name"); err != nil {
		return err
	}
	type plain Runnable
	v := plain{Trigger: TriggerTiming, PeriodMS: 10}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*r = Runnable(v)
	r.UID = orNewUID(r.UID)
	return nil
}

func (s *SoftwareComponent) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "component", "name"); err != nil {
		return err
	}
	type plain SoftwareComponent
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = SoftwareComponent(v)
	s.UID = orNewUID(s.UID)
	return nil
}

func (c *PortConnection) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "connection",
		"provider_swc_uid", "provider_port_uid", "requester_swc_uid", "requester_port_uid"); err != nil {
		return err
	}
	type plain PortConnection
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*c = PortConnection(v)
	c.UID = orNewUID(c.UID)
	return nil
}

func (p *Project) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &SchemaError{Field: "project", Line: node.Line, Msg: "expected a mapping"}
	}
	type plain Project
	v := plain{Name: DefaultProjectName}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Project(v)
	return nil
}

// ---------------------------------------------------------------------------
// Encode / decode
// ---------------------------------------------------------------------------

// Encode writes v as a YAML document with two-space indentation.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses data into v, normalising YAML type errors into SchemaError.
// An empty document leaves v untouched.
func Decode(data []byte, v any) error {
	err := yaml.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return se
	}
	var te *yaml.TypeError
	if errors.As(err, &te) {
		return &SchemaError{Field: "document", Msg: te.Error()}
	}
	return &SchemaError{Field: "document", Msg: err.Error()}
}

// Marshal returns the document form of p.
func Marshal(p *Project) ([]byte, error) {
	return Encode(p)
}

// Unmarshal parses a project document.
func Unmarshal(data []byte) (*Project, error) {
	p := NewProject(DefaultProjectName)
	if err := Decode(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
