package model

// validate.go: Connection rules.
//
// ValidateConnection is a pure predicate over the current lists: it never
// mutates and may be called repeatedly, e.g. while probing candidate pairs.
// The checks run in a fixed order and the first failure wins:
//
//  1. both components resolve            (ComponentNotFound)
//  2. both ports resolve on their owner  (PortNotFound)
//  3. provider port is provided          (WrongDirection)
//  4. requester port is required         (WrongDirection)
//  5. both ports share one interface     (InterfaceMismatch)
//     and neither port lacks one
//  6. no identical port pair exists      (DuplicateConnection)

import "fmt"

func reject(r Reason, format string, args ...any) error {
	return &ValidationError{Reason: r, Message: fmt.Sprintf(format, args...)}
}

// ValidateConnection reports whether a connection from providerPort on
// providerSwc to requesterPort on requesterSwc may be created.
func ValidateConnection(e *Elements, providerSwc, providerPort, requesterSwc, requesterPort UID) error {
	pSwc, ok := e.Component(providerSwc)
	if !ok {
		return reject(ComponentNotFound, "provider component %q not found", string(providerSwc))
	}
	rSwc, ok := e.Component(requesterSwc)
	if !ok {
		return reject(ComponentNotFound, "requester component %q not found", string(requesterSwc))
	}

	pPort, ok := pSwc.Port(providerPort)
	if !ok {
		return reject(PortNotFound, "provider port %q not found on %s", string(providerPort), pSwc.Name)
	}
	rPort, ok := rSwc.Port(requesterPort)
	if !ok {
		return reject(PortNotFound, "requester port %q not found on %s", string(requesterPort), rSwc.Name)
	}

	if pPort.Direction != Provided {
		return reject(WrongDirection, "provider port %s.%s must have 'provided' direction", pSwc.Name, pPort.Name)
	}
	if rPort.Direction != Required {
		return reject(WrongDirection, "requester port %s.%s must have 'required' direction", rSwc.Name, rPort.Name)
	}

	for _, end := range []struct {
		swc  *SoftwareComponent
		port *Port
	}{{pSwc, pPort}, {rSwc, rPort}} {
		if end.port.InterfaceUID == "" {
			return reject(InterfaceMismatch, "port %s.%s has no interface", end.swc.Name, end.port.Name)
		}
	}
	if pPort.InterfaceUID != rPort.InterfaceUID {
		return reject(InterfaceMismatch, "ports %s.%s and %s.%s must share the same interface",
			pSwc.Name, pPort.Name, rSwc.Name, rPort.Name)
	}

	for _, c := range e.Connections {
		if c.ProviderPortUID == providerPort && c.RequesterPortUID == requesterPort {
			return reject(DuplicateConnection, "connection %s.%s -> %s.%s already exists",
				pSwc.Name, pPort.Name, rSwc.Name, rPort.Name)
		}
	}
	return nil
}

// Connect validates the endpoints and, when legal, appends a new connection.
func (e *Elements) Connect(name string, providerSwc, providerPort, requesterSwc, requesterPort UID) (*PortConnection, error) {
	if err := ValidateConnection(e, providerSwc, providerPort, requesterSwc, requesterPort); err != nil {
		return nil, err
	}
	return e.AddConnection(PortConnection{
		Name:             name,
		ProviderSwcUID:   providerSwc,
		ProviderPortUID:  providerPort,
		RequesterSwcUID:  requesterSwc,
		RequesterPortUID: requesterPort,
	}), nil
}

// ConnectionsForPort returns every connection touching portUID on either end,
// in list order.
func (e *Elements) ConnectionsForPort(portUID UID) []PortConnection {
	var out []PortConnection
	for _, c := range e.Connections {
		if c.Touches(portUID) {
			out = append(out, c)
		}
	}
	return out
}

// CompatiblePorts returns every required port, on any component, that shares
// provider's interface. It is empty when provider is not a provided port.
func (e *Elements) CompatiblePorts(provider *Port) []PortRef {
	if provider == nil || provider.Direction != Provided || provider.InterfaceUID == "" {
		return nil
	}
	var out []PortRef
	for i := range e.Components {
		swc := &e.Components[i]
		for j := range swc.Ports {
			p := &swc.Ports[j]
			if p.Direction == Required && p.InterfaceUID == provider.InterfaceUID && p.UID != provider.UID {
				out = append(out, PortRef{Component: swc, Port: p})
			}
		}
	}
	return out
}
