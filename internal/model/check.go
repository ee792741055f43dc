package model

// check.go: Lazy reference and local-invariant checks.
//
// Storing a dangling reference is legal; these functions report them on
// demand. Results follow list order so output is reproducible.

import "fmt"

// CheckInterface enforces that an interface holds members of one kind only.
func CheckInterface(i *Interface) error {
	switch i.Kind {
	case SenderReceiver:
		if len(i.Operations) > 0 {
			return fmt.Errorf("interface %s: sender-receiver interface has %d operations", i.Name, len(i.Operations))
		}
	case ClientServer:
		if len(i.DataElements) > 0 {
			return fmt.Errorf("interface %s: client-server interface has %d data elements", i.Name, len(i.DataElements))
		}
	default:
		return fmt.Errorf("interface %s: unknown kind %q", i.Name, string(i.Kind))
	}
	return nil
}

// CheckRunnable enforces the trigger rules of r, owned by swc.
//
// Operation-invoked runnables must reference a provided client-server port
// of swc and an operation of that port's interface. Data-received runnables
// must reference a required sender-receiver port of swc and a data element
// of that port's interface. Timing runnables must not be negative.
func CheckRunnable(e *Elements, swc *SoftwareComponent, r *Runnable) error {
	owner := swc.Name + "/" + r.Name
	switch r.Trigger {
	case TriggerTiming:
		if r.PeriodMS < 0 {
			return fmt.Errorf("runnable %s: negative period %d", owner, r.PeriodMS)
		}
		return nil
	case TriggerOperationInvoked, TriggerDataReceived:
	default:
		return fmt.Errorf("runnable %s: unknown trigger %q", owner, string(r.Trigger))
	}

	port, ok := swc.Port(r.PortUID)
	if !ok {
		return &ReferenceError{Owner: owner, Field: "port_uid", UID: r.PortUID}
	}
	iface, ok := e.PortInterface(port)
	if !ok {
		return &ReferenceError{Owner: owner + "/" + port.Name, Field: "interface_uid", UID: port.InterfaceUID}
	}

	if r.Trigger == TriggerOperationInvoked {
		if port.Direction != Provided || iface.Kind != ClientServer {
			return fmt.Errorf("runnable %s: operation-invoked trigger needs a provided client-server port, %s is %s %s",
				owner, port.Name, port.Direction, iface.Kind)
		}
		if _, ok := iface.Operation(r.OperationUID); !ok {
			return &ReferenceError{Owner: owner, Field: "operation_uid", UID: r.OperationUID}
		}
		return nil
	}

	if port.Direction != Required || iface.Kind != SenderReceiver {
		return fmt.Errorf("runnable %s: data-received trigger needs a required sender-receiver port, %s is %s %s",
			owner, port.Name, port.Direction, iface.Kind)
	}
	if _, ok := iface.DataElement(r.DataElementUID); !ok {
		return &ReferenceError{Owner: owner, Field: "data_element_uid", UID: r.DataElementUID}
	}
	return nil
}

// CheckReferences returns one error per dangling UID reference and per
// violated local invariant, in document order.
func (e *Elements) CheckReferences() []error {
	var errs []error
	ref := func(owner, field string, uid UID, ok bool) {
		if uid != "" && !ok {
			errs = append(errs, &ReferenceError{Owner: owner, Field: field, UID: uid})
		}
	}
	appType := func(uid UID) bool { _, ok := e.AppType(uid); return ok }

	for _, t := range e.AppTypes {
		_, ok := e.CompuMethod(t.CompuMethodUID)
		ref(t.Name, "compu_method_uid", t.CompuMethodUID, ok)
		ref(t.Name, "element_type_uid", t.ElementTypeUID, appType(t.ElementTypeUID))
		for _, m := range t.StructMembers {
			ref(t.Name+"."+m.Name, "type_uid", m.TypeUID, appType(m.TypeUID))
		}
	}
	for _, m := range e.Mappings {
		owner := "mapping " + string(m.UID)
		ref(owner, "app_type_uid", m.AppTypeUID, appType(m.AppTypeUID))
		_, ok := e.ImplType(m.ImplTypeUID)
		ref(owner, "impl_type_uid", m.ImplTypeUID, ok)
	}
	for i := range e.Interfaces {
		iface := &e.Interfaces[i]
		if err := CheckInterface(iface); err != nil {
			errs = append(errs, err)
		}
		for _, d := range iface.DataElements {
			ref(iface.Name+"/"+d.Name, "app_type_uid", d.AppTypeUID, appType(d.AppTypeUID))
		}
		for _, op := range iface.Operations {
			ref(iface.Name+"/"+op.Name, "return_type_uid", op.ReturnTypeUID, appType(op.ReturnTypeUID))
			for _, a := range op.Arguments {
				ref(iface.Name+"/"+op.Name+"/"+a.Name, "app_type_uid", a.AppTypeUID, appType(a.AppTypeUID))
			}
		}
	}
	for i := range e.Components {
		swc := &e.Components[i]
		for _, p := range swc.Ports {
			_, ok := e.Interface(p.InterfaceUID)
			ref(swc.Name+"/"+p.Name, "interface_uid", p.InterfaceUID, ok)
		}
		for j := range swc.Runnables {
			if err := CheckRunnable(e, swc, &swc.Runnables[j]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, c := range e.Connections {
		owner := "connection " + connLabel(c)
		pSwc, ok := e.Component(c.ProviderSwcUID)
		ref(owner, "provider_swc_uid", c.ProviderSwcUID, ok)
		if ok {
			_, pok := pSwc.Port(c.ProviderPortUID)
			ref(owner, "provider_port_uid", c.ProviderPortUID, pok)
		}
		rSwc, ok := e.Component(c.RequesterSwcUID)
		ref(owner, "requester_swc_uid", c.RequesterSwcUID, ok)
		if ok {
			_, rok := rSwc.Port(c.RequesterPortUID)
			ref(owner, "requester_port_uid", c.RequesterPortUID, rok)
		}
	}
	return errs
}

func connLabel(c PortConnection) string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.UID)
}
