package workspace

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"swcgen/internal/model"
)

// Default names for documents that omit one.
const (
	DefaultMasterName = "Multi-Module Project"
	DefaultModuleName = "Untitled Module"
)

// ModuleRef is one entry of a master's module list. Path is relative to the
// master document's directory.
type ModuleRef struct {
	Path        string `yaml:"path"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Enabled     bool   `yaml:"enabled"`
}

// Master is the top-level document listing modules and holding the
// connections that span them.
type Master struct {
	Name              string                 `yaml:"name"`
	Description       string                 `yaml:"description"`
	Modules           []ModuleRef            `yaml:"modules"`
	GlobalConnections []model.PortConnection `yaml:"global_connections"`
}

// Module is a partial project: any subset of entity lists, including
// module-local connections.
type Module struct {
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	model.Elements `yaml:",inline"`
}

// stem returns the file name of path without its extension.
func stem(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r *ModuleRef) UnmarshalYAML(node *yaml.Node) error {
	if err := model.RequireKeys(node, "module reference", "path"); err != nil {
		return err
	}
	type plain ModuleRef
	v := plain{Enabled: true}
	if err := node.Decode(&v); err != nil {
		return err
	}
	if v.Name == "" {
		v.Name = stem(v.Path)
	}
	*r = ModuleRef(v)
	return nil
}

func (m *Master) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &model.SchemaError{Field: "master", Line: node.Line, Msg: "expected a mapping"}
	}
	type plain Master
	v := plain{Name: DefaultMasterName}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*m = Master(v)
	return nil
}

func (m *Module) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &model.SchemaError{Field: "module", Line: node.Line, Msg: "expected a mapping"}
	}
	type plain Module
	v := plain{Name: DefaultModuleName}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*m = Module(v)
	return nil
}

// MarshalMaster returns the document form of m.
func MarshalMaster(m *Master) ([]byte, error) { return model.Encode(m) }

// UnmarshalMaster parses a master document.
func UnmarshalMaster(data []byte) (*Master, error) {
	m := &Master{Name: DefaultMasterName}
	if err := model.Decode(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalModule returns the document form of m.
func MarshalModule(m *Module) ([]byte, error) { return model.Encode(m) }

// UnmarshalModule parses a module document.
func UnmarshalModule(data []byte) (*Module, error) {
	m := &Module{Name: DefaultModuleName}
	if err := model.Decode(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// IsMaster reports whether data looks like a master document rather than a
// single-file project: its top-level mapping has a "modules" or
// "global_connections" key.
func IsMaster(data []byte) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return false
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		switch root.Content[i].Value {
		case "modules", "global_connections":
			return true
		}
	}
	return false
}
