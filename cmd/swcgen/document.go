package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"swcgen/internal/model"
	"swcgen/internal/workspace"
)

// document is either a single project file or a loaded master.
type document struct {
	path    string
	ws      *workspace.Workspace
	project *model.Project
}

func openDocument(path string, logger *log.Logger) (*document, error) {
	data, err := model.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if workspace.IsMaster(data) {
		ws, err := workspace.Load(path, workspace.WithLogger(logger.WithPrefix("workspace")))
		if err != nil {
			return nil, err
		}
		return &document{path: path, ws: ws}, nil
	}
	p, err := model.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &document{path: path, project: p}, nil
}

// view is the project commands operate on: the merged view for a master.
func (d *document) view() *model.Project {
	if d.ws != nil {
		return d.ws.Merged()
	}
	return d.project
}

// connect validates and stores a connection: globally for a master, in the
// project otherwise.
func (d *document) connect(name string, ep endpoints) (model.PortConnection, error) {
	if d.ws != nil {
		return d.ws.Connect(name, ep.providerSwc, ep.providerPort, ep.requesterSwc, ep.requesterPort)
	}
	c, err := d.project.Connect(name, ep.providerSwc, ep.providerPort, ep.requesterSwc, ep.requesterPort)
	if err != nil {
		return model.PortConnection{}, err
	}
	return *c, nil
}

// save writes what connect changes: the master, or the project file.
func (d *document) save() error {
	if d.ws != nil {
		return d.ws.SaveMaster()
	}
	return model.SaveProject(d.project, d.path)
}

// files are the documents whose changes affect view.
func (d *document) files() []string {
	if d.ws != nil {
		return d.ws.Files()
	}
	return []string{d.path}
}

func (d *document) master() (*workspace.Workspace, error) {
	if d.ws == nil {
		return nil, fmt.Errorf("%s is not a master document", d.path)
	}
	return d.ws, nil
}

// endpoints are the four UIDs of a prospective connection.
type endpoints struct {
	providerSwc, providerPort, requesterSwc, requesterPort model.UID
}

// resolveEndpoints maps component and port arguments, each given by UID or
// by name, to UIDs. Arguments that match nothing are passed through as UIDs
// so validation reports them.
func resolveEndpoints(e *model.Elements, providerSwc, providerPort, requesterSwc, requesterPort string) endpoints {
	var ep endpoints
	ep.providerSwc, ep.providerPort = resolvePort(e, providerSwc, providerPort)
	ep.requesterSwc, ep.requesterPort = resolvePort(e, requesterSwc, requesterPort)
	return ep
}

func resolvePort(e *model.Elements, swcArg, portArg string) (model.UID, model.UID) {
	swc, ok := findComponent(e, swcArg)
	if !ok {
		return model.UID(swcArg), model.UID(portArg)
	}
	if p, ok := findPort(swc, portArg); ok {
		return swc.UID, p.UID
	}
	return swc.UID, model.UID(portArg)
}

// findComponent looks arg up as a UID, then as a name.
func findComponent(e *model.Elements, arg string) (*model.SoftwareComponent, bool) {
	if swc, ok := e.Component(model.UID(arg)); ok {
		return swc, true
	}
	return e.ComponentByName(arg)
}

// findPort looks arg up on swc as a UID, then as a name.
func findPort(swc *model.SoftwareComponent, arg string) (*model.Port, bool) {
	if p, ok := swc.Port(model.UID(arg)); ok {
		return p, true
	}
	return swc.PortByName(arg)
}
