// Package workspace assembles a multi-module project.
//
// A master document lists module documents by relative path and holds the
// connections that span modules. Load reads the master and every enabled
// module; Merged concatenates them into one model.Project. The merged view
// is cached and every mutation through Workspace drops the cache before
// returning.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"swcgen/internal/model"
)

// ErrUnknownModule is returned for a module name not listed in the master.
var ErrUnknownModule = errors.New("unknown module")

// Issue records a module that could not be loaded. Loading continues past
// issues; the affected module is simply absent from the merged view.
type Issue struct {
	Module string
	Path   string
	Err    error
}

func (i Issue) Error() string {
	return fmt.Sprintf("module %s (%s): %v", i.Module, i.Path, i.Err)
}

func (i Issue) Unwrap() error { return i.Err }

// Workspace is a loaded master together with its loaded modules.
type Workspace struct {
	master  *Master
	path    string             // master document path
	loaded  map[string]*Module // by module name
	issues  []Issue
	merged  *model.Project
	dropped []model.PortConnection
	logger  *log.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger routes load warnings to logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workspace) { w.logger = logger }
}

func newWorkspace(path string, m *Master, opts []Option) *Workspace {
	w := &Workspace{
		master: m,
		path:   path,
		loaded: make(map[string]*Module),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// New returns an empty workspace whose master will be saved at path.
func New(path, name string, opts ...Option) *Workspace {
	if name == "" {
		name = DefaultMasterName
	}
	return newWorkspace(path, &Master{Name: name}, opts)
}

// Load reads the master at path and every enabled module it lists, in list
// order. A malformed or unreadable master is an error. A missing or
// malformed module is recorded as an Issue and skipped.
func Load(path string, opts ...Option) (*Workspace, error) {
	data, err := model.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := UnmarshalMaster(data)
	if err != nil {
		return nil, fmt.Errorf("parse master %s: %w", path, err)
	}
	w := newWorkspace(path, m, opts)
	for _, ref := range m.Modules {
		if !ref.Enabled {
			w.logger.Debug("module disabled", "module", ref.Name)
			continue
		}
		if err := w.loadModule(ref); err != nil {
			w.issues = append(w.issues, Issue{Module: ref.Name, Path: w.modulePath(ref), Err: err})
			w.logger.Warn("module skipped", "module", ref.Name, "err", err)
		}
	}
	return w, nil
}

func (w *Workspace) modulePath(ref ModuleRef) string {
	if filepath.IsAbs(ref.Path) {
		return ref.Path
	}
	return filepath.Join(filepath.Dir(w.path), filepath.FromSlash(ref.Path))
}

// loadModule reads ref's document and registers it under ref.Name.
func (w *Workspace) loadModule(ref ModuleRef) error {
	data, err := model.ReadFile(w.modulePath(ref))
	if err != nil {
		return err
	}
	mod, err := UnmarshalModule(data)
	if err != nil {
		return err
	}
	mod.Name = ref.Name
	w.loaded[ref.Name] = mod
	w.logger.Debug("module loaded", "module", ref.Name,
		"components", len(mod.Components), "interfaces", len(mod.Interfaces))
	return nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Path returns the master document path.
func (w *Workspace) Path() string { return w.path }

// Name returns the master name.
func (w *Workspace) Name() string { return w.master.Name }

// Description returns the master description.
func (w *Workspace) Description() string { return w.master.Description }

// Refs returns a copy of the master's module list.
func (w *Workspace) Refs() []ModuleRef { return slices.Clone(w.master.Modules) }

// GlobalConnections returns a copy of the master-level connections.
func (w *Workspace) GlobalConnections() []model.PortConnection {
	return slices.Clone(w.master.GlobalConnections)
}

// Issues returns the problems recorded while loading modules.
func (w *Workspace) Issues() []Issue { return slices.Clone(w.issues) }

// Module returns a copy of a loaded module. Edit is the only way to change
// a module in place.
func (w *Workspace) Module(name string) (*Module, bool) {
	m, ok := w.loaded[name]
	if !ok {
		return nil, false
	}
	return &Module{Name: m.Name, Description: m.Description, Elements: m.Elements.Clone()}, true
}

// Loaded reports whether the named module is in memory.
func (w *Workspace) Loaded(name string) bool {
	_, ok := w.loaded[name]
	return ok
}

// Files returns the master path followed by the document path of every
// enabled module, in master order.
func (w *Workspace) Files() []string {
	out := []string{w.path}
	for _, ref := range w.master.Modules {
		if ref.Enabled {
			out = append(out, w.modulePath(ref))
		}
	}
	return out
}

func (w *Workspace) ref(name string) (*ModuleRef, bool) {
	for i := range w.master.Modules {
		if w.master.Modules[i].Name == name {
			return &w.master.Modules[i], true
		}
	}
	return nil, false
}

// Merged returns the union of every enabled, loaded module in master order,
// followed by the master's global connections. Connections whose provider or
// requester port is not declared on its component within the union are left
// out; see Dropped.
//
// The result is a deep copy of the modules, cached and shared between calls
// until the next mutation.
func (w *Workspace) Merged() *model.Project {
	if w.merged != nil {
		return w.merged
	}
	p := model.NewProject(w.master.Name)
	p.Description = w.master.Description
	var conns []model.PortConnection
	for _, ref := range w.master.Modules {
		mod, ok := w.loaded[ref.Name]
		if !ok || !ref.Enabled {
			continue
		}
		el := mod.Elements.Clone()
		p.CompuMethods = append(p.CompuMethods, el.CompuMethods...)
		p.AppTypes = append(p.AppTypes, el.AppTypes...)
		p.ImplTypes = append(p.ImplTypes, el.ImplTypes...)
		p.Mappings = append(p.Mappings, el.Mappings...)
		p.Interfaces = append(p.Interfaces, el.Interfaces...)
		p.Components = append(p.Components, el.Components...)
		conns = append(conns, el.Connections...)
	}
	conns = append(conns, w.master.GlobalConnections...)

	type endpoint struct{ swc, port model.UID }
	present := make(map[endpoint]bool)
	for _, swc := range p.Components {
		for _, port := range swc.Ports {
			present[endpoint{swc.UID, port.UID}] = true
		}
	}
	w.dropped = nil
	for _, c := range conns {
		if present[endpoint{c.ProviderSwcUID, c.ProviderPortUID}] &&
			present[endpoint{c.RequesterSwcUID, c.RequesterPortUID}] {
			p.Connections = append(p.Connections, c)
		} else {
			w.dropped = append(w.dropped, c)
		}
	}
	w.merged = p
	return p
}

// Dropped returns the connections left out of the merged view because one
// of their endpoints is absent.
func (w *Workspace) Dropped() []model.PortConnection {
	w.Merged()
	return slices.Clone(w.dropped)
}

// Owner returns the name of the loaded module declaring uid. Nested
// entities (ports, runnables, data elements, operations, arguments) and
// module-local connections count. Modules are scanned in master order.
func (w *Workspace) Owner(uid model.UID) (string, bool) {
	if uid == "" {
		return "", false
	}
	for _, ref := range w.master.Modules {
		mod, ok := w.loaded[ref.Name]
		if ok && declares(&mod.Elements, uid) {
			return ref.Name, true
		}
	}
	return "", false
}

func declares(e *model.Elements, uid model.UID) bool {
	if _, ok := e.CompuMethod(uid); ok {
		return true
	}
	if _, ok := e.AppType(uid); ok {
		return true
	}
	if _, ok := e.ImplType(uid); ok {
		return true
	}
	if _, ok := e.Mapping(uid); ok {
		return true
	}
	if _, ok := e.Connection(uid); ok {
		return true
	}
	for i := range e.Interfaces {
		iface := &e.Interfaces[i]
		if iface.UID == uid {
			return true
		}
		if _, ok := iface.DataElement(uid); ok {
			return true
		}
		for j := range iface.Operations {
			op := &iface.Operations[j]
			if op.UID == uid {
				return true
			}
			for _, a := range op.Arguments {
				if a.UID == uid {
					return true
				}
			}
		}
	}
	for i := range e.Components {
		swc := &e.Components[i]
		if swc.UID == uid {
			return true
		}
		if _, ok := swc.Port(uid); ok {
			return true
		}
		if _, ok := swc.Runnable(uid); ok {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// Invalidate drops the cached merged view.
func (w *Workspace) Invalidate() {
	w.merged = nil
	w.dropped = nil
}

// SetInfo updates the master name and description.
func (w *Workspace) SetInfo(name, description string) {
	w.master.Name = name
	w.master.Description = description
	w.Invalidate()
}

// AddModule lists mod in the master at relPath (relative to the master's
// directory), registers it as loaded and enabled, and writes its document.
// The module is registered even when the write fails.
func (w *Workspace) AddModule(mod *Module, relPath string) error {
	if mod.Name == "" {
		mod.Name = stem(relPath)
	}
	if _, ok := w.ref(mod.Name); ok {
		return fmt.Errorf("add module %s: name already listed", mod.Name)
	}
	ref := ModuleRef{
		Path:        filepath.ToSlash(relPath),
		Name:        mod.Name,
		Description: mod.Description,
		Enabled:     true,
	}
	w.master.Modules = append(w.master.Modules, ref)
	w.loaded[mod.Name] = mod
	w.Invalidate()
	return w.SaveModule(mod.Name)
}

// RemoveModule unlists the named module and drops it from memory. When
// deleteFile is set the module document is removed from disk as well.
// Global connections that reference its components stay in the master but
// no longer appear in the merged view.
func (w *Workspace) RemoveModule(name string, deleteFile bool) error {
	ref, ok := w.ref(name)
	if !ok {
		return fmt.Errorf("remove module %s: %w", name, ErrUnknownModule)
	}
	path := w.modulePath(*ref)
	w.master.Modules = slices.DeleteFunc(w.master.Modules, func(r ModuleRef) bool { return r.Name == name })
	delete(w.loaded, name)
	w.Invalidate()
	if deleteFile {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &model.IOError{Op: "remove", Path: path, Err: err}
		}
	}
	return nil
}

// SetEnabled switches a module in or out of the merged view. Enabling a
// module that is not in memory loads it from disk; on failure the module
// stays disabled and the error is returned.
func (w *Workspace) SetEnabled(name string, enabled bool) error {
	ref, ok := w.ref(name)
	if !ok {
		return fmt.Errorf("set enabled %s: %w", name, ErrUnknownModule)
	}
	if enabled && !w.Loaded(name) {
		if err := w.loadModule(*ref); err != nil {
			return fmt.Errorf("enable %s: %w", name, err)
		}
		w.issues = slices.DeleteFunc(w.issues, func(i Issue) bool { return i.Module == name })
	}
	ref.Enabled = enabled
	w.Invalidate()
	return nil
}

// Edit applies fn to the named loaded module and drops the merged view.
// Global connections attached to a component or port that fn removed are
// deleted from the master, whether or not fn fails.
func (w *Workspace) Edit(name string, fn func(*Module) error) error {
	mod, ok := w.loaded[name]
	if !ok {
		return fmt.Errorf("edit %s: %w", name, ErrUnknownModule)
	}
	defer w.Invalidate()
	before := endpointUIDs(&mod.Elements)
	err := fn(mod)
	after := endpointUIDs(&mod.Elements)
	gone := func(uid model.UID) bool { return before[uid] && !after[uid] }

	n := len(w.master.GlobalConnections)
	w.master.GlobalConnections = slices.DeleteFunc(w.master.GlobalConnections, func(c model.PortConnection) bool {
		return gone(c.ProviderSwcUID) || gone(c.ProviderPortUID) ||
			gone(c.RequesterSwcUID) || gone(c.RequesterPortUID)
	})
	if removed := n - len(w.master.GlobalConnections); removed > 0 {
		w.logger.Debug("global connections removed", "module", name, "count", removed)
	}
	return err
}

// endpointUIDs collects the UIDs of every component and port in e.
func endpointUIDs(e *model.Elements) map[model.UID]bool {
	out := make(map[model.UID]bool)
	for _, swc := range e.Components {
		out[swc.UID] = true
		for _, p := range swc.Ports {
			out[p.UID] = true
		}
	}
	return out
}

// RemoveComponent deletes a component from the named module together with
// every module-local and global connection attached to it.
func (w *Workspace) RemoveComponent(name string, swcUID model.UID) (bool, error) {
	var removed bool
	err := w.Edit(name, func(m *Module) error {
		removed = m.RemoveComponent(swcUID)
		return nil
	})
	return removed, err
}

// RemovePort deletes a port from a component of the named module together
// with every module-local and global connection referencing it.
func (w *Workspace) RemovePort(name string, swcUID, portUID model.UID) (bool, error) {
	var removed bool
	err := w.Edit(name, func(m *Module) error {
		removed = m.RemovePort(swcUID, portUID)
		return nil
	})
	return removed, err
}

// AddGlobalConnection appends c to the master without validation.
func (w *Workspace) AddGlobalConnection(c model.PortConnection) model.PortConnection {
	if c.UID == "" {
		c.UID = model.NewUID()
	}
	w.master.GlobalConnections = append(w.master.GlobalConnections, c)
	w.Invalidate()
	return c
}

// RemoveGlobalConnection deletes a master-level connection by UID.
func (w *Workspace) RemoveGlobalConnection(uid model.UID) bool {
	n := len(w.master.GlobalConnections)
	w.master.GlobalConnections = slices.DeleteFunc(w.master.GlobalConnections,
		func(c model.PortConnection) bool { return c.UID == uid })
	if len(w.master.GlobalConnections) == n {
		return false
	}
	w.Invalidate()
	return true
}

// Connect validates the endpoints against the merged view and, when legal,
// stores the connection in the master.
func (w *Workspace) Connect(name string, providerSwc, providerPort, requesterSwc, requesterPort model.UID) (model.PortConnection, error) {
	if err := model.ValidateConnection(&w.Merged().Elements, providerSwc, providerPort, requesterSwc, requesterPort); err != nil {
		return model.PortConnection{}, err
	}
	return w.AddGlobalConnection(model.PortConnection{
		Name:             name,
		ProviderSwcUID:   providerSwc,
		ProviderPortUID:  providerPort,
		RequesterSwcUID:  requesterSwc,
		RequesterPortUID: requesterPort,
	}), nil
}

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

// SaveModule writes the named loaded module to its listed path.
func (w *Workspace) SaveModule(name string) error {
	ref, ok := w.ref(name)
	if !ok {
		return fmt.Errorf("save module %s: %w", name, ErrUnknownModule)
	}
	mod, ok := w.loaded[name]
	if !ok {
		return fmt.Errorf("save module %s: not loaded", name)
	}
	data, err := MarshalModule(mod)
	if err != nil {
		return err
	}
	return model.WriteFile(w.modulePath(*ref), data)
}

// SaveModules writes every loaded module, in master order. Each file is
// written independently; the first error is returned after all attempts.
func (w *Workspace) SaveModules() error {
	var first error
	for _, ref := range w.master.Modules {
		if !w.Loaded(ref.Name) {
			continue
		}
		if err := w.SaveModule(ref.Name); err != nil {
			w.logger.Error("save module failed", "module", ref.Name, "err", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// SaveMaster writes the master document.
func (w *Workspace) SaveMaster() error {
	data, err := MarshalMaster(w.master)
	if err != nil {
		return err
	}
	return model.WriteFile(w.path, data)
}

// SaveAll writes every loaded module, then the master.
func (w *Workspace) SaveAll() error {
	modErr := w.SaveModules()
	if err := w.SaveMaster(); err != nil && modErr == nil {
		return err
	}
	return modErr
}
