package codegen

// resolve.go: Pre-pass from the entity model to template views.
//
// Every UID lookup happens here. Templates only see names, C type names and
// prebuilt declarations, in the declared order of the underlying lists.

import (
	"fmt"
	"strings"

	"swcgen/internal/model"
)

// ResolvedPort pairs a port with its interface. Interface is nil when the
// port has none or the reference does not resolve.
type ResolvedPort struct {
	*model.Port
	Interface *model.Interface
}

// ResolvedComponent is a component whose port interfaces are attached.
type ResolvedComponent struct {
	*model.SoftwareComponent
	Ports []ResolvedPort
}

// Resolve attaches the interface of every port of swc.
func Resolve(e *model.Elements, swc *model.SoftwareComponent) ResolvedComponent {
	rc := ResolvedComponent{SoftwareComponent: swc, Ports: make([]ResolvedPort, len(swc.Ports))}
	for i := range swc.Ports {
		p := &swc.Ports[i]
		rc.Ports[i] = ResolvedPort{Port: p}
		if iface, ok := e.PortInterface(p); ok {
			rc.Ports[i].Interface = iface
		}
	}
	return rc
}

// ---------------------------------------------------------------------------
// Type naming
// ---------------------------------------------------------------------------

type typer struct{ e *model.Elements }

// appType returns the ADT name when uid resolves.
func (t typer) appType(uid model.UID) (string, bool) {
	if adt, ok := t.e.AppType(uid); ok {
		return adt.Name, true
	}
	return "", false
}

func (t typer) dataElement(d *model.DataElement) string {
	if n, ok := t.appType(d.AppTypeUID); ok {
		return n
	}
	return CType(d.BaseType)
}

func (t typer) argument(a *model.Argument) string {
	if n, ok := t.appType(a.AppTypeUID); ok {
		return n
	}
	return CType(a.BaseType)
}

func (t typer) result(op *model.Operation) string {
	if n, ok := t.appType(op.ReturnTypeUID); ok {
		return n
	}
	return CType(op.ReturnBaseType)
}

// implMember resolves a struct member type: another implementation type by
// UID, else a base type tag.
func (t typer) implMember(m model.ImplMember) string {
	if idt, ok := t.e.ImplType(model.UID(m.Type)); ok {
		return idt.Name
	}
	return CType(model.BaseType(m.Type))
}

// adtTarget is the type an ADT is defined as: its first mapped
// implementation type, else the fallback.
func (t typer) adtTarget(adt *model.ApplicationDataType) string {
	if idt, ok := t.e.ImplTypeFor(adt.UID); ok {
		return idt.Name
	}
	return FallbackCType
}

// params renders an operation parameter list. In arguments pass by value,
// out and inout arguments by pointer.
func (t typer) params(op *model.Operation) string {
	if len(op.Arguments) == 0 {
		return "void"
	}
	parts := make([]string, len(op.Arguments))
	for i := range op.Arguments {
		a := &op.Arguments[i]
		ptr := ""
		if a.Direction == model.Out || a.Direction == model.InOut {
			ptr = "*"
		}
		parts[i] = fmt.Sprintf("%s%s %s", t.argument(a), ptr, a.Name)
	}
	return strings.Join(parts, ", ")
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

type interfaceView struct {
	Name    string
	Kind    model.InterfaceKind
	Members []string
}

type componentEntry struct {
	Name   string
	Header string
}

type rteTypeView struct {
	Banner     string
	ImplTypes  []string
	AppTypes   []string
	Interfaces []interfaceView
	Components []componentEntry
}

type runnableView struct {
	Name        string
	Description string
	Activation  string
}

type serverView struct {
	Return    string
	Name      string
	Params    string
	ArgNames  []string
	PortName  string
	Operation string
}

type portView struct {
	Name    string
	Comment string
	APIs    []string
}

type componentView struct {
	Banner      string
	Name        string
	Description string
	Guard       string
	RteHeader   string
	RteGuard    string
	Runnables   []runnableView
	Servers     []serverView
	Ports       []portView
}

// guard derives an include-guard macro from a file name.
func guard(file string) string {
	var b strings.Builder
	for _, r := range file {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (t typer) implTypeDecl(idt *model.ImplementationDataType) string {
	switch {
	case idt.IsStruct:
		var b strings.Builder
		b.WriteString("typedef struct {\n")
		for _, m := range idt.StructMembers {
			fmt.Fprintf(&b, "    %s %s;\n", t.implMember(m), m.Name)
		}
		fmt.Fprintf(&b, "} %s;", idt.Name)
		return b.String()
	case idt.IsArray:
		return fmt.Sprintf("typedef %s %s[%d];", CType(idt.BaseType), idt.Name, idt.ArraySize)
	default:
		return fmt.Sprintf("typedef %s %s;", CType(idt.BaseType), idt.Name)
	}
}

func (t typer) appTypeDecl(adt *model.ApplicationDataType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "typedef %s %s;", t.adtTarget(adt), adt.Name)
	if cm, ok := t.e.CompuMethod(adt.CompuMethodUID); ok {
		fmt.Fprintf(&b, " /* %s: phys = raw * %g + %g", cm.Name, cm.Factor, cm.Offset)
		if cm.Unit != "" {
			fmt.Fprintf(&b, " [%s]", cm.Unit)
		}
		b.WriteString(" */")
	}
	for _, l := range adt.EnumLiterals {
		fmt.Fprintf(&b, "\n#define %s ((%s)%d)", l.Name, adt.Name, l.Value)
	}
	return b.String()
}

func (t typer) interfaceView(iface *model.Interface) interfaceView {
	v := interfaceView{Name: iface.Name, Kind: iface.Kind}
	for i := range iface.DataElements {
		d := &iface.DataElements[i]
		v.Members = append(v.Members, fmt.Sprintf("%s %s (init %s)", t.dataElement(d), d.Name, d.InitValue))
	}
	for i := range iface.Operations {
		op := &iface.Operations[i]
		v.Members = append(v.Members, fmt.Sprintf("%s %s(%s)", t.result(op), op.Name, t.params(op)))
	}
	return v
}

func rteHeaderName(swc string) string { return "Rte_" + swc + ".h" }

func (t typer) rteTypes(p *model.Project, banner string) rteTypeView {
	v := rteTypeView{Banner: banner}
	for i := range p.ImplTypes {
		v.ImplTypes = append(v.ImplTypes, t.implTypeDecl(&p.ImplTypes[i]))
	}
	for i := range p.AppTypes {
		v.AppTypes = append(v.AppTypes, t.appTypeDecl(&p.AppTypes[i]))
	}
	for i := range p.Interfaces {
		v.Interfaces = append(v.Interfaces, t.interfaceView(&p.Interfaces[i]))
	}
	for _, swc := range p.Components {
		v.Components = append(v.Components, componentEntry{Name: swc.Name, Header: rteHeaderName(swc.Name)})
	}
	return v
}

// activation describes what schedules r.
func activation(rc ResolvedComponent, r *model.Runnable) string {
	switch r.Trigger {
	case model.TriggerTiming:
		if r.PeriodMS == 0 {
			return "init/background"
		}
		return fmt.Sprintf("timing, every %d ms", r.PeriodMS)
	case model.TriggerOperationInvoked, model.TriggerDataReceived:
		port, member := string(r.PortUID), ""
		for _, rp := range rc.Ports {
			if rp.UID != r.PortUID {
				continue
			}
			port = rp.Name
			if rp.Interface == nil {
				break
			}
			if op, ok := rp.Interface.Operation(r.OperationUID); ok {
				member = op.Name
			} else if d, ok := rp.Interface.DataElement(r.DataElementUID); ok {
				member = d.Name
			}
		}
		if r.Trigger == model.TriggerOperationInvoked {
			return fmt.Sprintf("on invocation of %s.%s", port, member)
		}
		return fmt.Sprintf("on reception of %s.%s", port, member)
	}
	return string(r.Trigger)
}

func (t typer) component(rc ResolvedComponent, banner string) componentView {
	v := componentView{
		Banner:      banner,
		Name:        rc.Name,
		Description: rc.Description,
		Guard:       guard(rc.Name + ".h"),
		RteHeader:   rteHeaderName(rc.Name),
		RteGuard:    guard(rteHeaderName(rc.Name)),
	}
	for i := range rc.Runnables {
		r := &rc.Runnables[i]
		v.Runnables = append(v.Runnables, runnableView{
			Name:        r.Name,
			Description: r.Description,
			Activation:  activation(rc, r),
		})
	}
	for _, rp := range rc.Ports {
		pv := portView{Name: rp.Name}
		if rp.Interface == nil {
			pv.Comment = fmt.Sprintf("%s port, no interface", rp.Direction)
			v.Ports = append(v.Ports, pv)
			continue
		}
		pv.Comment = fmt.Sprintf("%s %s port, interface %s", rp.Direction, rp.Interface.Kind, rp.Interface.Name)
		switch {
		case rp.Interface.Kind == model.SenderReceiver && rp.Direction == model.Provided:
			for i := range rp.Interface.DataElements {
				d := &rp.Interface.DataElements[i]
				pv.APIs = append(pv.APIs, fmt.Sprintf("Std_ReturnType Rte_Write_%s_%s(%s data);", rp.Name, d.Name, t.dataElement(d)))
			}
		case rp.Interface.Kind == model.SenderReceiver:
			for i := range rp.Interface.DataElements {
				d := &rp.Interface.DataElements[i]
				pv.APIs = append(pv.APIs, fmt.Sprintf("Std_ReturnType Rte_Read_%s_%s(%s* data);", rp.Name, d.Name, t.dataElement(d)))
			}
		case rp.Direction == model.Required:
			for i := range rp.Interface.Operations {
				op := &rp.Interface.Operations[i]
				pv.APIs = append(pv.APIs, fmt.Sprintf("Std_ReturnType Rte_Call_%s_%s(%s);", rp.Name, op.Name, t.params(op)))
			}
		default:
			for i := range rp.Interface.Operations {
				op := &rp.Interface.Operations[i]
				s := serverView{
					Return:    t.result(op),
					Name:      fmt.Sprintf("%s_%s_%s", rc.Name, rp.Name, op.Name),
					Params:    t.params(op),
					PortName:  rp.Name,
					Operation: op.Name,
				}
				for _, a := range op.Arguments {
					s.ArgNames = append(s.ArgNames, a.Name)
				}
				v.Servers = append(v.Servers, s)
			}
		}
		v.Ports = append(v.Ports, pv)
	}
	return v
}
