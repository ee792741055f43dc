// Package codegen renders C stubs for the components of a project.
//
// Output, in order:
//
//	Std_Types.h      platform primitive typedefs
//	Rte_Type.h       data types, interfaces and one entry per component
//	<Swc>.h          per component: runnable and server prototypes
//	<Swc>.c          per component: empty runnable and server bodies
//	Rte_<Swc>.h      per component: RTE read/write/call prototypes
//
// Render is pure and deterministic. Write is the only step touching disk.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"swcgen/internal/model"
)

//go:embed templates/*.tmpl
var fsTemplates embed.FS

var templates = template.Must(template.ParseFS(fsTemplates, "templates/*.tmpl"))

// DefaultHeader is the banner placed at the top of every generated file.
const DefaultHeader = "/* Generated by swcgen. Do not edit. */"

// File is one rendered output file. Name has no directory part.
type File struct {
	Name    string
	Content []byte
}

// Bundle is the rendered output of a project.
type Bundle struct {
	files []File
}

// Files returns the rendered files in generation order.
func (b *Bundle) Files() []File { return b.files }

// Names returns the file names in generation order.
func (b *Bundle) Names() []string {
	out := make([]string, len(b.files))
	for i, f := range b.files {
		out[i] = f.Name
	}
	return out
}

type options struct {
	header string
}

// Option configures rendering.
type Option func(*options)

// WithHeader replaces the banner at the top of every file. Trailing
// newlines are trimmed.
func WithHeader(text string) Option {
	return func(o *options) { o.header = strings.TrimRight(text, "\r\n") }
}

func fill(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("fill template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Render produces the output files for every component of p, in project
// order. Component names must be usable as flat file names and must not
// collide.
func Render(p *model.Project, opts ...Option) (*Bundle, error) {
	o := options{header: DefaultHeader}
	for _, opt := range opts {
		opt(&o)
	}
	t := typer{e: &p.Elements}
	b := &Bundle{}
	seen := make(map[string]bool)

	add := func(name, tmpl string, data any) error {
		if seen[name] {
			return fmt.Errorf("render: duplicate output file %s", name)
		}
		seen[name] = true
		content, err := fill(tmpl, data)
		if err != nil {
			return err
		}
		b.files = append(b.files, File{Name: name, Content: content})
		return nil
	}

	std := struct {
		Banner string
		Types  []stdType
	}{o.header, stdTypes()}
	if err := add("Std_Types.h", "std_types.h.tmpl", std); err != nil {
		return nil, err
	}
	if err := add("Rte_Type.h", "rte_type.h.tmpl", t.rteTypes(p, o.header)); err != nil {
		return nil, err
	}

	for i := range p.Components {
		swc := &p.Components[i]
		if swc.Name == "" || strings.ContainsAny(swc.Name, `/\`) || swc.Name == "." || swc.Name == ".." {
			return nil, fmt.Errorf("render: component name %q is not a valid file name", swc.Name)
		}
		v := t.component(Resolve(&p.Elements, swc), o.header)
		if err := add(swc.Name+".h", "swc_header.h.tmpl", v); err != nil {
			return nil, err
		}
		if err := add(swc.Name+".c", "swc_source.c.tmpl", v); err != nil {
			return nil, err
		}
		if err := add(v.RteHeader, "rte_header.h.tmpl", v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// WriteError reports a failed write. Written lists the files already
// written, in order, before the failure.
type WriteError struct {
	Written []string
	Path    string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("generate: %v (%d file(s) written before failure)", e.Err, len(e.Written))
}

func (e *WriteError) Unwrap() error { return e.Err }

// Write creates dir if needed and writes every file of b into it, replacing
// existing files. It stops at the first failure.
func Write(b *Bundle, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: &model.IOError{Op: "mkdir", Path: dir, Err: err}}
	}
	written := make([]string, 0, len(b.files))
	for _, f := range b.files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return written, &WriteError{Written: written, Path: path, Err: &model.IOError{Op: "write", Path: path, Err: err}}
		}
		written = append(written, path)
	}
	return written, nil
}

// Generate renders p and writes the result into dir.
func Generate(p *model.Project, dir string, opts ...Option) ([]string, error) {
	b, err := Render(p, opts...)
	if err != nil {
		return nil, err
	}
	return Write(b, dir)
}
