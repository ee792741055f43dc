package model

// resolve.go: Read-only UID lookups.
//
// Every lookup returns (entity, false) when the UID is absent; unresolved is
// a normal, checkable state. Linear scans return the first match in list
// order. Index trades a one-off build for O(1) lookups; on duplicate UIDs the
// later entity wins.

// find returns a pointer to the first element whose uid matches.
func find[T any](s []T, uid UID, get func(*T) UID) (*T, bool) {
	if uid == "" {
		return nil, false
	}
	for i := range s {
		if get(&s[i]) == uid {
			return &s[i], true
		}
	}
	return nil, false
}

func (e *Elements) CompuMethod(uid UID) (*CompuMethod, bool) {
	return find(e.CompuMethods, uid, func(c *CompuMethod) UID { return c.UID })
}

func (e *Elements) AppType(uid UID) (*ApplicationDataType, bool) {
	return find(e.AppTypes, uid, func(t *ApplicationDataType) UID { return t.UID })
}

func (e *Elements) ImplType(uid UID) (*ImplementationDataType, bool) {
	return find(e.ImplTypes, uid, func(t *ImplementationDataType) UID { return t.UID })
}

func (e *Elements) Mapping(uid UID) (*DataTypeMapping, bool) {
	return find(e.Mappings, uid, func(m *DataTypeMapping) UID { return m.UID })
}

func (e *Elements) Interface(uid UID) (*Interface, bool) {
	return find(e.Interfaces, uid, func(i *Interface) UID { return i.UID })
}

func (e *Elements) Component(uid UID) (*SoftwareComponent, bool) {
	return find(e.Components, uid, func(s *SoftwareComponent) UID { return s.UID })
}

func (e *Elements) Connection(uid UID) (*PortConnection, bool) {
	return find(e.Connections, uid, func(c *PortConnection) UID { return c.UID })
}

func (s *SoftwareComponent) Port(uid UID) (*Port, bool) {
	return find(s.Ports, uid, func(p *Port) UID { return p.UID })
}

func (s *SoftwareComponent) Runnable(uid UID) (*Runnable, bool) {
	return find(s.Runnables, uid, func(r *Runnable) UID { return r.UID })
}

func (i *Interface) DataElement(uid UID) (*DataElement, bool) {
	return find(i.DataElements, uid, func(d *DataElement) UID { return d.UID })
}

func (i *Interface) Operation(uid UID) (*Operation, bool) {
	return find(i.Operations, uid, func(op *Operation) UID { return op.UID })
}

// ImplTypeFor returns the implementation type of the first mapping whose
// application type is adtUID. Later mappings for the same ADT are ignored.
func (e *Elements) ImplTypeFor(adtUID UID) (*ImplementationDataType, bool) {
	for _, m := range e.Mappings {
		if m.AppTypeUID == adtUID {
			return e.ImplType(m.ImplTypeUID)
		}
	}
	return nil, false
}

// PortInterface resolves the interface referenced by p.
func (e *Elements) PortInterface(p *Port) (*Interface, bool) {
	return e.Interface(p.InterfaceUID)
}

// ComponentByName returns the first component called name.
func (e *Elements) ComponentByName(name string) (*SoftwareComponent, bool) {
	for i := range e.Components {
		if e.Components[i].Name == name {
			return &e.Components[i], true
		}
	}
	return nil, false
}

// PortByName returns the first port of s called name.
func (s *SoftwareComponent) PortByName(name string) (*Port, bool) {
	for i := range s.Ports {
		if s.Ports[i].Name == name {
			return &s.Ports[i], true
		}
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Index
// ---------------------------------------------------------------------------

// PortRef locates a port together with its owning component.
type PortRef struct {
	Component *SoftwareComponent
	Port      *Port
}

// Index maps UIDs to entities of an Elements value. It is a snapshot: any
// mutation of the underlying lists requires a new Index.
type Index struct {
	CompuMethods map[UID]*CompuMethod
	AppTypes     map[UID]*ApplicationDataType
	ImplTypes    map[UID]*ImplementationDataType
	Interfaces   map[UID]*Interface
	Components   map[UID]*SoftwareComponent
	Ports        map[UID]PortRef
	Connections  map[UID]*PortConnection
}

// NewIndex builds an Index over e.
func NewIndex(e *Elements) *Index {
	ix := &Index{
		CompuMethods: make(map[UID]*CompuMethod, len(e.CompuMethods)),
		AppTypes:     make(map[UID]*ApplicationDataType, len(e.AppTypes)),
		ImplTypes:    make(map[UID]*ImplementationDataType, len(e.ImplTypes)),
		Interfaces:   make(map[UID]*Interface, len(e.Interfaces)),
		Components:   make(map[UID]*SoftwareComponent, len(e.Components)),
		Ports:        make(map[UID]PortRef),
		Connections:  make(map[UID]*PortConnection, len(e.Connections)),
	}
	for i := range e.CompuMethods {
		ix.CompuMethods[e.CompuMethods[i].UID] = &e.CompuMethods[i]
	}
	for i := range e.AppTypes {
		ix.AppTypes[e.AppTypes[i].UID] = &e.AppTypes[i]
	}
	for i := range e.ImplTypes {
		ix.ImplTypes[e.ImplTypes[i].UID] = &e.ImplTypes[i]
	}
	for i := range e.Interfaces {
		ix.Interfaces[e.Interfaces[i].UID] = &e.Interfaces[i]
	}
	for i := range e.Components {
		swc := &e.Components[i]
		ix.Components[swc.UID] = swc
		for j := range swc.Ports {
			ix.Ports[swc.Ports[j].UID] = PortRef{Component: swc, Port: &swc.Ports[j]}
		}
	}
	for i := range e.Connections {
		ix.Connections[e.Connections[i].UID] = &e.Connections[i]
	}
	return ix
}
