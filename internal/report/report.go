// Package report renders a Markdown overview of a project.
//
// Layout:
//
//	index.md                 summary plus component, interface and type lists
//	components/<name>.md     ports and runnables of one component
//	interfaces/<name>.md     members and the ports that use one interface
//	composition.md           Mermaid LR graph of every connection
//
// Every page starts with YAML frontmatter (title, kind, uid, tags). Pages are
// built in memory by Build; Write is the only step touching disk.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"swcgen/internal/frontmatter"
	"swcgen/internal/model"
)

// Meta is the frontmatter of every page.
type Meta struct {
	Title string    `yaml:"title"`
	Kind  string    `yaml:"kind"`
	UID   model.UID `yaml:"uid,omitempty"`
	Tags  []string  `yaml:"tags"`
}

// Bundle holds rendered pages keyed by slash-separated relative path.
type Bundle struct {
	pages map[string][]byte
}

// Paths returns every page path in sorted order.
func (b *Bundle) Paths() []string {
	paths := make([]string, 0, len(b.pages))
	for p := range b.pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Page returns the content at path.
func (b *Bundle) Page(path string) ([]byte, bool) {
	c, ok := b.pages[path]
	return c, ok
}

// Build renders every page for p. It never touches disk.
func Build(p *model.Project) (*Bundle, error) {
	b := &Bundle{pages: make(map[string][]byte)}
	ix := model.NewIndex(&p.Elements)

	add := func(path string, m Meta, body string) error {
		if _, dup := b.pages[path]; dup {
			return fmt.Errorf("report: duplicate page %s", path)
		}
		tags := append([]string(nil), m.Tags...)
		sort.Strings(tags)
		m.Tags = tags
		data, err := frontmatter.Write(m, body)
		if err != nil {
			return err
		}
		b.pages[path] = data
		return nil
	}

	if err := add("index.md", Meta{Title: p.Name, Kind: "index", Tags: []string{"swcgen/index"}},
		buildIndexPage(p)); err != nil {
		return nil, err
	}
	for i := range p.Components {
		swc := &p.Components[i]
		m := Meta{Title: swc.Name, Kind: "component", UID: swc.UID, Tags: []string{"swcgen/component"}}
		if err := add(componentPath(swc.Name), m, buildComponentPage(p, ix, swc)); err != nil {
			return nil, err
		}
	}
	for i := range p.Interfaces {
		iface := &p.Interfaces[i]
		m := Meta{Title: iface.Name, Kind: "interface", UID: iface.UID,
			Tags: []string{"swcgen/interface", "kind/" + string(iface.Kind)}}
		if err := add(interfacePath(iface.Name), m, buildInterfacePage(p, iface)); err != nil {
			return nil, err
		}
	}
	if err := add("composition.md", Meta{Title: "Composition", Kind: "graph", Tags: []string{"swcgen/graph"}},
		buildCompositionGraph(p, ix)); err != nil {
		return nil, err
	}
	return b, nil
}

// Write writes every page of b under dir in sorted path order and returns
// the written paths.
func Write(b *Bundle, dir string) ([]string, error) {
	var written []string
	for _, p := range b.Paths() {
		abs := filepath.Join(dir, filepath.FromSlash(p))
		if err := model.WriteFile(abs, b.pages[p]); err != nil {
			return written, err
		}
		written = append(written, abs)
	}
	return written, nil
}

// ---------------------------------------------------------------------------
// Page builders
// ---------------------------------------------------------------------------

func buildIndexPage(p *model.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	fmt.Fprintf(&b, "- **Components**: %d\n", len(p.Components))
	fmt.Fprintf(&b, "- **Interfaces**: %d\n", len(p.Interfaces))
	fmt.Fprintf(&b, "- **Connections**: %d\n\n", len(p.Connections))

	b.WriteString("## Components\n\n")
	for _, swc := range p.Components {
		fmt.Fprintf(&b, "- [[%s|%s]]%s\n", strings.TrimSuffix(componentPath(swc.Name), ".md"), swc.Name, dash(swc.Description))
	}
	b.WriteString("\n## Interfaces\n\n")
	for _, iface := range p.Interfaces {
		fmt.Fprintf(&b, "- [[%s|%s]] (%s)%s\n", strings.TrimSuffix(interfacePath(iface.Name), ".md"), iface.Name, iface.Kind, dash(iface.Description))
	}

	if len(p.AppTypes) > 0 {
		b.WriteString("\n## Application Data Types\n\n")
		b.WriteString("| Name | Category | Implementation | Scaling |\n")
		b.WriteString("|------|----------|----------------|---------|\n")
		for _, adt := range p.AppTypes {
			impl := "-"
			if idt, ok := p.ImplTypeFor(adt.UID); ok {
				impl = fmt.Sprintf("%s (%s)", idt.Name, idt.BaseType)
			}
			scaling := "-"
			if cm, ok := p.CompuMethod(adt.CompuMethodUID); ok {
				scaling = fmt.Sprintf("%s: x%g %+g %s", cm.Name, cm.Factor, cm.Offset, cm.Unit)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", adt.Name, adt.Category, impl, strings.TrimSpace(scaling))
		}
	}

	if refs := p.CheckReferences(); len(refs) > 0 {
		b.WriteString("\n## Problems\n\n")
		for _, err := range refs {
			b.WriteString("- " + err.Error() + "\n")
		}
	}
	return b.String()
}

func buildComponentPage(p *model.Project, ix *model.Index, swc *model.SoftwareComponent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", swc.Name)
	if swc.Description != "" {
		b.WriteString(swc.Description + "\n\n")
	}

	b.WriteString("## Ports\n\n")
	if len(swc.Ports) == 0 {
		b.WriteString("_None._\n")
	} else {
		b.WriteString("| Port | Direction | Interface | Connected to |\n")
		b.WriteString("|------|-----------|-----------|--------------|\n")
		for i := range swc.Ports {
			port := &swc.Ports[i]
			iface := "_none_"
			if it, ok := ix.Interfaces[port.InterfaceUID]; ok {
				iface = fmt.Sprintf("[[%s|%s]]", strings.TrimSuffix(interfacePath(it.Name), ".md"), it.Name)
			}
			var peers []string
			for _, c := range p.ConnectionsForPort(port.UID) {
				peer := c.RequesterPortUID
				if port.Direction == model.Required {
					peer = c.ProviderPortUID
				}
				peers = append(peers, portLabel(ix, peer))
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", port.Name, port.Direction, iface, orDash(strings.Join(peers, ", ")))
		}
	}

	b.WriteString("\n## Runnables\n\n")
	if len(swc.Runnables) == 0 {
		b.WriteString("_None._\n")
	} else {
		b.WriteString("| Runnable | Trigger | Period (ms) | Problem |\n")
		b.WriteString("|----------|---------|-------------|---------|\n")
		for i := range swc.Runnables {
			r := &swc.Runnables[i]
			problem := "-"
			if err := model.CheckRunnable(&p.Elements, swc, r); err != nil {
				problem = err.Error()
			}
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", r.Name, r.Trigger, r.PeriodMS, problem)
		}
	}
	return b.String()
}

func buildInterfacePage(p *model.Project, iface *model.Interface) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", iface.Name)
	fmt.Fprintf(&b, "**Kind**: %s\n\n", iface.Kind)
	if iface.Description != "" {
		b.WriteString(iface.Description + "\n\n")
	}

	if len(iface.DataElements) > 0 {
		b.WriteString("## Data Elements\n\n")
		b.WriteString("| Name | Type | Init |\n")
		b.WriteString("|------|------|------|\n")
		for _, d := range iface.DataElements {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", d.Name, typeName(p, d.AppTypeUID, d.BaseType), d.InitValue)
		}
		b.WriteString("\n")
	}
	if len(iface.Operations) > 0 {
		b.WriteString("## Operations\n\n")
		for _, op := range iface.Operations {
			args := make([]string, len(op.Arguments))
			for i, a := range op.Arguments {
				args[i] = fmt.Sprintf("%s %s: %s", a.Direction, a.Name, typeName(p, a.AppTypeUID, a.BaseType))
			}
			fmt.Fprintf(&b, "- `%s(%s) -> %s`\n", op.Name, strings.Join(args, ", "), typeName(p, op.ReturnTypeUID, op.ReturnBaseType))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Used By\n\n")
	used := false
	for _, swc := range p.Components {
		for _, port := range swc.Ports {
			if port.InterfaceUID == iface.UID {
				fmt.Fprintf(&b, "- %s.%s (%s)\n", swc.Name, port.Name, port.Direction)
				used = true
			}
		}
	}
	if !used {
		b.WriteString("_Unused._\n")
	}
	return b.String()
}

// buildCompositionGraph renders connections as a Mermaid LR graph, in
// connection list order. Node ids follow component list order.
func buildCompositionGraph(p *model.Project, ix *model.Index) string {
	var b strings.Builder
	b.WriteString("# Composition\n\n")
	if len(p.Components) == 0 {
		b.WriteString("_No components._\n")
		return b.String()
	}

	ids := make(map[model.UID]string, len(p.Components))
	b.WriteString("```mermaid\ngraph LR\n")
	for i, swc := range p.Components {
		id := fmt.Sprintf("c%d", i)
		if _, seen := ids[swc.UID]; !seen {
			ids[swc.UID] = id
		}
		fmt.Fprintf(&b, "  %s[%q]\n", id, swc.Name)
	}
	for _, c := range p.Connections {
		from, okFrom := ids[c.ProviderSwcUID]
		to, okTo := ids[c.RequesterSwcUID]
		if !okFrom || !okTo {
			continue
		}
		label := portName(ix, c.ProviderPortUID)
		if ref, ok := ix.Ports[c.ProviderPortUID]; ok {
			if it, ok := ix.Interfaces[ref.Port.InterfaceUID]; ok {
				label = it.Name
			}
		}
		fmt.Fprintf(&b, "  %s -->|%s| %s\n", from, label, to)
	}
	b.WriteString("```\n")
	return b.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func typeName(p *model.Project, adt model.UID, base model.BaseType) string {
	if t, ok := p.AppType(adt); ok {
		return t.Name
	}
	return string(base)
}

func portName(ix *model.Index, uid model.UID) string {
	if ref, ok := ix.Ports[uid]; ok {
		return ref.Port.Name
	}
	return string(uid)
}

func portLabel(ix *model.Index, uid model.UID) string {
	if ref, ok := ix.Ports[uid]; ok {
		return ref.Component.Name + "." + ref.Port.Name
	}
	return "?" + string(uid)
}

func dash(s string) string {
	if s == "" {
		return ""
	}
	return ": " + s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func componentPath(name string) string { return "components/" + sanitizeFilename(name) + ".md" }

func interfacePath(name string) string { return "interfaces/" + sanitizeFilename(name) + ".md" }

// sanitizeFilename replaces path separators, dots and spaces with -,
// collapses runs of - and trims them from both ends.
func sanitizeFilename(s string) string {
	s = strings.NewReplacer("/", "-", `\`, "-", ".", "-", " ", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "unnamed"
	}
	return s
}
