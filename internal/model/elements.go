package model

// elements.go: Add/remove operations on the entity lists.
//
// Add* appends a copy of the given entity, assigning a fresh UID when the
// entity has none, and returns a pointer into the list. The pointer is valid
// until the next append to the same list.
//
// Remove* deletes by UID and reports whether anything was removed. Removing
// a component or a port cascades to every connection that references one of
// the removed ports. Nothing else cascades: other dangling references are
// legal and surface through CheckReferences.

import "slices"

func (e *Elements) AddCompuMethod(c CompuMethod) *CompuMethod {
	c.UID = orNewUID(c.UID)
	e.CompuMethods = append(e.CompuMethods, c)
	return &e.CompuMethods[len(e.CompuMethods)-1]
}

func (e *Elements) AddAppType(t ApplicationDataType) *ApplicationDataType {
	t.UID = orNewUID(t.UID)
	e.AppTypes = append(e.AppTypes, t)
	return &e.AppTypes[len(e.AppTypes)-1]
}

func (e *Elements) AddImplType(t ImplementationDataType) *ImplementationDataType {
	t.UID = orNewUID(t.UID)
	e.ImplTypes = append(e.ImplTypes, t)
	return &e.ImplTypes[len(e.ImplTypes)-1]
}

func (e *Elements) AddMapping(appType, implType UID) *DataTypeMapping {
	e.Mappings = append(e.Mappings, DataTypeMapping{
		AppTypeUID:  appType,
		ImplTypeUID: implType,
		UID:         NewUID(),
	})
	return &e.Mappings[len(e.Mappings)-1]
}

// AddInterface appends iface. UIDs of nested data elements, operations and
// arguments are assigned as well.
func (e *Elements) AddInterface(iface Interface) *Interface {
	iface.UID = orNewUID(iface.UID)
	iface.DataElements = slices.Clone(iface.DataElements)
	for i := range iface.DataElements {
		iface.DataElements[i].UID = orNewUID(iface.DataElements[i].UID)
	}
	iface.Operations = slices.Clone(iface.Operations)
	for i := range iface.Operations {
		assignOperationUIDs(&iface.Operations[i])
	}
	e.Interfaces = append(e.Interfaces, iface)
	return &e.Interfaces[len(e.Interfaces)-1]
}

// AddComponent appends swc, assigning UIDs to its ports and runnables.
func (e *Elements) AddComponent(swc SoftwareComponent) *SoftwareComponent {
	swc.UID = orNewUID(swc.UID)
	swc.Ports = slices.Clone(swc.Ports)
	for i := range swc.Ports {
		swc.Ports[i].UID = orNewUID(swc.Ports[i].UID)
	}
	swc.Runnables = slices.Clone(swc.Runnables)
	for i := range swc.Runnables {
		swc.Runnables[i].UID = orNewUID(swc.Runnables[i].UID)
	}
	e.Components = append(e.Components, swc)
	return &e.Components[len(e.Components)-1]
}

// AddConnection appends c without validation. Use Connect to validate first.
func (e *Elements) AddConnection(c PortConnection) *PortConnection {
	c.UID = orNewUID(c.UID)
	e.Connections = append(e.Connections, c)
	return &e.Connections[len(e.Connections)-1]
}

func (s *SoftwareComponent) AddPort(p Port) *Port {
	p.UID = orNewUID(p.UID)
	s.Ports = append(s.Ports, p)
	return &s.Ports[len(s.Ports)-1]
}

func (s *SoftwareComponent) AddRunnable(r Runnable) *Runnable {
	r.UID = orNewUID(r.UID)
	s.Runnables = append(s.Runnables, r)
	return &s.Runnables[len(s.Runnables)-1]
}

func (i *Interface) AddDataElement(d DataElement) *DataElement {
	d.UID = orNewUID(d.UID)
	i.DataElements = append(i.DataElements, d)
	return &i.DataElements[len(i.DataElements)-1]
}

func (i *Interface) AddOperation(op Operation) *Operation {
	assignOperationUIDs(&op)
	i.Operations = append(i.Operations, op)
	return &i.Operations[len(i.Operations)-1]
}

func (op *Operation) AddArgument(a Argument) *Argument {
	a.UID = orNewUID(a.UID)
	op.Arguments = append(op.Arguments, a)
	return &op.Arguments[len(op.Arguments)-1]
}

func assignOperationUIDs(op *Operation) {
	op.UID = orNewUID(op.UID)
	op.Arguments = slices.Clone(op.Arguments)
	for i := range op.Arguments {
		op.Arguments[i].UID = orNewUID(op.Arguments[i].UID)
	}
}

// ---------------------------------------------------------------------------
// Removal
// ---------------------------------------------------------------------------

// removeByUID deletes every element whose uid matches and reports whether
// the slice shrank.
func removeByUID[T any](s *[]T, uid UID, get func(*T) UID) bool {
	n := len(*s)
	*s = slices.DeleteFunc(*s, func(v T) bool { return get(&v) == uid })
	return len(*s) != n
}

func (e *Elements) RemoveCompuMethod(uid UID) bool {
	return removeByUID(&e.CompuMethods, uid, func(c *CompuMethod) UID { return c.UID })
}

func (e *Elements) RemoveAppType(uid UID) bool {
	return removeByUID(&e.AppTypes, uid, func(t *ApplicationDataType) UID { return t.UID })
}

func (e *Elements) RemoveImplType(uid UID) bool {
	return removeByUID(&e.ImplTypes, uid, func(t *ImplementationDataType) UID { return t.UID })
}

func (e *Elements) RemoveMapping(uid UID) bool {
	return removeByUID(&e.Mappings, uid, func(m *DataTypeMapping) UID { return m.UID })
}

func (e *Elements) RemoveInterface(uid UID) bool {
	return removeByUID(&e.Interfaces, uid, func(i *Interface) UID { return i.UID })
}

func (e *Elements) RemoveConnection(uid UID) bool {
	return removeByUID(&e.Connections, uid, func(c *PortConnection) UID { return c.UID })
}

// RemoveComponent deletes the component and every connection whose provider
// or requester port belonged to it.
func (e *Elements) RemoveComponent(uid UID) bool {
	swc, ok := e.Component(uid)
	if !ok {
		return false
	}
	ports := make(map[UID]bool, len(swc.Ports))
	for _, p := range swc.Ports {
		ports[p.UID] = true
	}
	e.Connections = slices.DeleteFunc(e.Connections, func(c PortConnection) bool {
		return ports[c.ProviderPortUID] || ports[c.RequesterPortUID]
	})
	return removeByUID(&e.Components, uid, func(s *SoftwareComponent) UID { return s.UID })
}

// RemovePort deletes a port from the given component and every connection
// referencing it.
func (e *Elements) RemovePort(swcUID, portUID UID) bool {
	swc, ok := e.Component(swcUID)
	if !ok {
		return false
	}
	if !removeByUID(&swc.Ports, portUID, func(p *Port) UID { return p.UID }) {
		return false
	}
	e.Connections = slices.DeleteFunc(e.Connections, func(c PortConnection) bool {
		return c.Touches(portUID)
	})
	return true
}

func (s *SoftwareComponent) RemoveRunnable(uid UID) bool {
	return removeByUID(&s.Runnables, uid, func(r *Runnable) UID { return r.UID })
}

func (i *Interface) RemoveDataElement(uid UID) bool {
	return removeByUID(&i.DataElements, uid, func(d *DataElement) UID { return d.UID })
}

func (i *Interface) RemoveOperation(uid UID) bool {
	return removeByUID(&i.Operations, uid, func(op *Operation) UID { return op.UID })
}

func (op *Operation) RemoveArgument(uid UID) bool {
	return removeByUID(&op.Arguments, uid, func(a *Argument) UID { return a.UID })
}

// ---------------------------------------------------------------------------
// Copying
// ---------------------------------------------------------------------------

// Clone returns a deep copy of e. No slice or pointer of the copy aliases e.
func (e *Elements) Clone() Elements {
	out := Elements{
		CompuMethods: slices.Clone(e.CompuMethods),
		AppTypes:     slices.Clone(e.AppTypes),
		ImplTypes:    slices.Clone(e.ImplTypes),
		Mappings:     slices.Clone(e.Mappings),
		Interfaces:   slices.Clone(e.Interfaces),
		Components:   slices.Clone(e.Components),
		Connections:  slices.Clone(e.Connections),
	}
	for i := range out.AppTypes {
		t := &out.AppTypes[i]
		t.MinValue = clonePtr(t.MinValue)
		t.MaxValue = clonePtr(t.MaxValue)
		t.StructMembers = slices.Clone(t.StructMembers)
		t.EnumLiterals = slices.Clone(t.EnumLiterals)
	}
	for i := range out.ImplTypes {
		out.ImplTypes[i].StructMembers = slices.Clone(out.ImplTypes[i].StructMembers)
	}
	for i := range out.Interfaces {
		iface := &out.Interfaces[i]
		iface.DataElements = slices.Clone(iface.DataElements)
		iface.Operations = slices.Clone(iface.Operations)
		for j := range iface.Operations {
			iface.Operations[j].Arguments = slices.Clone(iface.Operations[j].Arguments)
		}
	}
	for i := range out.Components {
		swc := &out.Components[i]
		swc.Ports = slices.Clone(swc.Ports)
		swc.Runnables = slices.Clone(swc.Runnables)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
