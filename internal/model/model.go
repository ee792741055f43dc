// Package model holds the component-network entity model: data types,
// interfaces, software components and their port connections.
//
// Entities reference each other only by UID. The aggregate is a flat forest
// of ordered lists (Elements) that serializes to a single YAML document;
// lookups go through the Resolve* helpers or an Index built on demand.
package model

// ---------------------------------------------------------------------------
// Scaling
// ---------------------------------------------------------------------------

// CompuMethod scales an internal value: physical = internal*Factor + Offset.
type CompuMethod struct {
	Name        string  `yaml:"name"`
	Factor      float64 `yaml:"factor"`
	Offset      float64 `yaml:"offset"`
	Unit        string  `yaml:"unit,omitempty"`
	Description string  `yaml:"description,omitempty"`
	UID         UID     `yaml:"uid"`
}

// Physical converts an internal value to its physical representation.
func (c *CompuMethod) Physical(internal float64) float64 {
	return internal*c.Factor + c.Offset
}

// ---------------------------------------------------------------------------
// Data types
// ---------------------------------------------------------------------------

// StructMember is one field of a structure ADT, in declared layout order.
type StructMember struct {
	Name    string `yaml:"name"`
	TypeUID UID    `yaml:"type_uid"`
}

// EnumLiteral is one literal of an enum ADT, in declared order.
type EnumLiteral struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// ApplicationDataType is an abstract, platform-independent data type.
// The payload fields used depend on Category.
type ApplicationDataType struct {
	Name           string          `yaml:"name"`
	Category       AppDataCategory `yaml:"category"`
	CompuMethodUID UID             `yaml:"compu_method_uid,omitempty"`
	MinValue       *float64        `yaml:"min_value,omitempty"`
	MaxValue       *float64        `yaml:"max_value,omitempty"`
	InitValue      string          `yaml:"init_value"`
	Description    string          `yaml:"description,omitempty"`
	ArraySize      int             `yaml:"array_size"`
	ElementTypeUID UID             `yaml:"element_type_uid,omitempty"`
	StructMembers  []StructMember  `yaml:"struct_members,omitempty"`
	EnumLiterals   []EnumLiteral   `yaml:"enum_literals,omitempty"`
	UID            UID             `yaml:"uid"`
}

// ImplMember is one field of a structure IDT. Type is either the UID of
// another implementation type or a base type tag.
type ImplMember struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ImplementationDataType is a concrete, platform-typed data type.
type ImplementationDataType struct {
	Name          string       `yaml:"name"`
	BaseType      BaseType     `yaml:"base_type"`
	IsArray       bool         `yaml:"is_array"`
	ArraySize     int          `yaml:"array_size"`
	IsStruct      bool         `yaml:"is_struct"`
	StructMembers []ImplMember `yaml:"struct_members,omitempty"`
	Description   string       `yaml:"description,omitempty"`
	UID           UID          `yaml:"uid"`
}

// DataTypeMapping binds an application type to an implementation type.
// Nothing prevents two mappings for the same application type; lookups use
// the first one in list order.
type DataTypeMapping struct {
	AppTypeUID  UID `yaml:"app_type_uid"`
	ImplTypeUID UID `yaml:"impl_type_uid"`
	UID         UID `yaml:"uid"`
}

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// DataElement is a named value exchanged over a sender-receiver interface.
// BaseType is the fallback when AppTypeUID is empty or unresolved.
type DataElement struct {
	Name        string   `yaml:"name"`
	AppTypeUID  UID      `yaml:"app_type_uid,omitempty"`
	BaseType    BaseType `yaml:"base_type"`
	InitValue   string   `yaml:"init_value"`
	Description string   `yaml:"description,omitempty"`
	UID         UID      `yaml:"uid"`
}

// Argument is a parameter of a client-server operation.
type Argument struct {
	Name        string            `yaml:"name"`
	Direction   ArgumentDirection `yaml:"direction"`
	AppTypeUID  UID               `yaml:"app_type_uid,omitempty"`
	BaseType    BaseType          `yaml:"base_type"`
	Description string            `yaml:"description,omitempty"`
	UID         UID               `yaml:"uid"`
}

// Operation is a callable member of a client-server interface.
type Operation struct {
	Name           string     `yaml:"name"`
	ReturnTypeUID  UID        `yaml:"return_type_uid,omitempty"`
	ReturnBaseType BaseType   `yaml:"return_base_type"`
	Arguments      []Argument `yaml:"arguments,omitempty"`
	Description    string     `yaml:"description,omitempty"`
	UID            UID        `yaml:"uid"`
}

// Interface is either sender-receiver (DataElements) or client-server
// (Operations), never both.
type Interface struct {
	Name         string        `yaml:"name"`
	Kind         InterfaceKind `yaml:"interface_type"`
	DataElements []DataElement `yaml:"data_elements,omitempty"`
	Operations   []Operation   `yaml:"operations,omitempty"`
	Description  string        `yaml:"description,omitempty"`
	UID          UID           `yaml:"uid"`
}

// ---------------------------------------------------------------------------
// Software components
// ---------------------------------------------------------------------------

// Port is one end of an interface on a component. A port without an
// interface is legal but can be neither generated meaningfully nor connected.
type Port struct {
	Name         string        `yaml:"name"`
	Direction    PortDirection `yaml:"direction"`
	InterfaceUID UID           `yaml:"interface_uid,omitempty"`
	Description  string        `yaml:"description,omitempty"`
	UID          UID           `yaml:"uid"`
}

// Runnable is a schedulable entry point of a component.
//
// Timing runnables use PeriodMS (0 means init/background, never scheduled
// periodically). Operation-invoked runnables reference a provided
// client-server port and one of its operations; data-received runnables
// reference a required sender-receiver port and one of its data elements.
type Runnable struct {
	Name           string          `yaml:"name"`
	Trigger        RunnableTrigger `yaml:"trigger"`
	PeriodMS       int             `yaml:"period_ms"`
	PortUID        UID             `yaml:"port_uid,omitempty"`
	OperationUID   UID             `yaml:"operation_uid,omitempty"`
	DataElementUID UID             `yaml:"data_element_uid,omitempty"`
	Description    string          `yaml:"description,omitempty"`
	UID            UID             `yaml:"uid"`
}

// SoftwareComponent owns ordered ports and runnables.
type SoftwareComponent struct {
	Name        string     `yaml:"name"`
	Ports       []Port     `yaml:"ports,omitempty"`
	Runnables   []Runnable `yaml:"runnables,omitempty"`
	Description string     `yaml:"description,omitempty"`
	UID         UID        `yaml:"uid"`
}

// PortConnection is a directional assembly edge from a provided port to a
// required port.
type PortConnection struct {
	Name             string `yaml:"name,omitempty"`
	ProviderSwcUID   UID    `yaml:"provider_swc_uid"`
	ProviderPortUID  UID    `yaml:"provider_port_uid"`
	RequesterSwcUID  UID    `yaml:"requester_swc_uid"`
	RequesterPortUID UID    `yaml:"requester_port_uid"`
	Description      string `yaml:"description,omitempty"`
	UID              UID    `yaml:"uid"`
}

// Touches reports whether the connection references portUID on either end.
func (c *PortConnection) Touches(portUID UID) bool {
	return c.ProviderPortUID == portUID || c.RequesterPortUID == portUID
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

// Elements is the entity-list shape shared by a Project and a Module.
// Field order matches the document layout.
type Elements struct {
	CompuMethods []CompuMethod            `yaml:"compu_methods"`
	AppTypes     []ApplicationDataType    `yaml:"application_data_types"`
	ImplTypes    []ImplementationDataType `yaml:"implementation_data_types"`
	Mappings     []DataTypeMapping        `yaml:"data_type_mappings"`
	Interfaces   []Interface              `yaml:"interfaces"`
	Components   []SoftwareComponent      `yaml:"components"`
	Connections  []PortConnection         `yaml:"connections"`
}

// DefaultProjectName is used when a document omits the project name.
const DefaultProjectName = "Untitled Project"

// Project is the root aggregate.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Elements    `yaml:",inline"`
}

// NewProject returns an empty project.
func NewProject(name string) *Project {
	return &Project{Name: name}
}
