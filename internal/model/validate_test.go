package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConnection(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		pSwc, pPrt UID
		rSwc, rPrt UID
		want       Reason // empty means success
	}{
		{"legal", f.a, f.pp, f.b, f.rp, ""},
		{"unknown provider component", "nope", f.pp, f.b, f.rp, ComponentNotFound},
		{"unknown requester component", f.a, f.pp, "nope", f.rp, ComponentNotFound},
		{"port on wrong component", f.b, f.pp, f.b, f.rp, PortNotFound},
		{"unknown requester port", f.a, f.pp, f.b, "nope", PortNotFound},
		{"swapped roles", f.b, f.rp, f.a, f.pp, WrongDirection},
		{"provided as requester", f.a, f.pp, f.a, f.aux, WrongDirection},
		{"interface mismatch", f.a, f.pp, f.c, f.rq, InterfaceMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConnection(f.e, tt.pSwc, tt.pPrt, tt.rSwc, tt.rPrt)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.want, ve.Reason)
			assert.ErrorIs(t, err, ErrValidation)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

// Component lookup runs before port lookup, so a bad component wins over a
// bad port.
func TestValidateConnectionOrder(t *testing.T) {
	f := newFixture(t)
	err := ValidateConnection(f.e, "nope", "nope", f.b, "nope")
	assert.True(t, IsReason(err, ComponentNotFound))

	// Direction is checked before interface: A.Pp -> C.PpJ is both.
	err = ValidateConnection(f.e, f.a, f.pp, f.c, f.ppOnJ)
	assert.True(t, IsReason(err, WrongDirection))
}

func TestValidateIsPure(t *testing.T) {
	f := newFixture(t)
	before := len(f.e.Connections)
	first := ValidateConnection(f.e, f.a, f.pp, f.c, f.rq)
	second := ValidateConnection(f.e, f.a, f.pp, f.c, f.rq)
	assert.Equal(t, first, second)
	assert.Len(t, f.e.Connections, before)
}

func TestConnectThenDuplicate(t *testing.T) {
	f := newFixture(t)
	conn, err := f.e.Connect("Conn_AB", f.a, f.pp, f.b, f.rp)
	require.NoError(t, err)
	assert.NotEmpty(t, conn.UID)
	assert.Equal(t, "Conn_AB", conn.Name)

	err = ValidateConnection(f.e, f.a, f.pp, f.b, f.rp)
	assert.True(t, IsReason(err, DuplicateConnection), "got %v", err)

	_, err = f.e.Connect("again", f.a, f.pp, f.b, f.rp)
	assert.Error(t, err)
	assert.Len(t, f.e.Connections, 1)

	// A different provider port on the same requester is not a duplicate.
	_, err = f.e.Connect("Conn_AuxB", f.a, f.aux, f.b, f.rp)
	assert.NoError(t, err)
}

func TestConnectionsForPort(t *testing.T) {
	f := newFixture(t)
	_, err := f.e.Connect("c1", f.a, f.pp, f.b, f.rp)
	require.NoError(t, err)
	_, err = f.e.Connect("c2", f.a, f.aux, f.b, f.rp)
	require.NoError(t, err)

	assert.Len(t, f.e.ConnectionsForPort(f.rp), 2)
	got := f.e.ConnectionsForPort(f.pp)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].Name)
	assert.Empty(t, f.e.ConnectionsForPort(f.rq))
}

func TestPortsWithoutInterfaceCannotConnect(t *testing.T) {
	e := &Elements{}
	iface := e.AddInterface(Interface{Name: "I", Kind: SenderReceiver}).UID
	p := e.AddComponent(SoftwareComponent{Name: "P", Ports: []Port{
		{Name: "Bare", Direction: Provided},
		{Name: "Typed", Direction: Provided, InterfaceUID: iface},
	}})
	r := e.AddComponent(SoftwareComponent{Name: "R", Ports: []Port{
		{Name: "Bare", Direction: Required},
	}})

	err := ValidateConnection(e, p.UID, p.Ports[0].UID, r.UID, r.Ports[0].UID)
	assert.True(t, IsReason(err, InterfaceMismatch), "got %v", err)
	assert.Contains(t, err.Error(), "P.Bare has no interface")

	err = ValidateConnection(e, p.UID, p.Ports[1].UID, r.UID, r.Ports[0].UID)
	assert.True(t, IsReason(err, InterfaceMismatch), "got %v", err)
	assert.Contains(t, err.Error(), "R.Bare has no interface")

	assert.Empty(t, e.CompatiblePorts(&p.Ports[0]))
}

func TestCompatiblePorts(t *testing.T) {
	f := newFixture(t)
	a, _ := f.e.Component(f.a)
	pp, _ := a.Port(f.pp)

	refs := f.e.CompatiblePorts(pp)
	require.Len(t, refs, 1)
	assert.Equal(t, "B", refs[0].Component.Name)
	assert.Equal(t, f.rp, refs[0].Port.UID)

	b, _ := f.e.Component(f.b)
	rp, _ := b.Port(f.rp)
	assert.Empty(t, f.e.CompatiblePorts(rp), "required port has no compatible partners")
	assert.Empty(t, f.e.CompatiblePorts(nil))
}
