package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swcgen/internal/frontmatter"
	"swcgen/internal/model"
)

func page(t *testing.T, b *Bundle, path string) (Meta, string) {
	t.Helper()
	data, ok := b.Page(path)
	require.True(t, ok, "missing page %s", path)
	var m Meta
	body, err := frontmatter.Read(data, &m)
	require.NoError(t, err, path)
	return m, string(body)
}

func TestBuildPaths(t *testing.T) {
	b, err := Build(model.ExampleProject())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"components/Swc_DiagTester.md",
		"components/Swc_SpeedMonitor.md",
		"components/Swc_SpeedSensor.md",
		"composition.md",
		"index.md",
		"interfaces/If_DiagService.md",
		"interfaces/If_VehicleSpeed.md",
	}, b.Paths())
}

func TestIndexPage(t *testing.T) {
	p := model.ExampleProject()
	b, err := Build(p)
	require.NoError(t, err)

	m, body := page(t, b, "index.md")
	assert.Equal(t, p.Name, m.Title)
	assert.Equal(t, "index", m.Kind)
	assert.Contains(t, body, "- **Components**: 3")
	assert.Contains(t, body, "- **Connections**: 2")
	assert.Contains(t, body, "[[components/Swc_SpeedSensor|Swc_SpeedSensor]]")
	assert.Contains(t, body, "[[interfaces/If_DiagService|If_DiagService]] (client_server)")
	assert.Contains(t, body, "| VehicleSpeed_T | value | Impl_uint16 (uint16) |")
	assert.NotContains(t, body, "## Problems")
}

func TestIndexListsProblems(t *testing.T) {
	p := model.NewProject("Broken")
	p.AddComponent(model.SoftwareComponent{Name: "Swc_A", Ports: []model.Port{
		{Name: "Pp", Direction: model.Provided, InterfaceUID: "gone0001"},
	}})
	b, err := Build(p)
	require.NoError(t, err)
	_, body := page(t, b, "index.md")
	assert.Contains(t, body, "## Problems")
	assert.Contains(t, body, "gone0001")
}

func TestComponentPage(t *testing.T) {
	p := model.ExampleProject()
	b, err := Build(p)
	require.NoError(t, err)

	m, body := page(t, b, "components/Swc_SpeedMonitor.md")
	swc, _ := p.ComponentByName("Swc_SpeedMonitor")
	assert.Equal(t, swc.UID, m.UID)
	assert.Equal(t, []string{"swcgen/component"}, m.Tags)
	assert.Contains(t, body, "| Rp_VehicleSpeed | required | [[interfaces/If_VehicleSpeed|If_VehicleSpeed]] | Swc_SpeedSensor.Pp_VehicleSpeed |")
	assert.Contains(t, body, "| Ps_DiagService | provided | [[interfaces/If_DiagService|If_DiagService]] | Swc_DiagTester.Rc_DiagService |")
	assert.Contains(t, body, "| Run_MonitorSpeed | timing | 20 | - |")
}

func TestInterfacePage(t *testing.T) {
	b, err := Build(model.ExampleProject())
	require.NoError(t, err)

	m, body := page(t, b, "interfaces/If_DiagService.md")
	assert.Equal(t, []string{"kind/client_server", "swcgen/interface"}, m.Tags)
	assert.Contains(t, body, "- `ReadDataById(in dataId: DiagId_T, out data: uint8) -> DiagStatus_T`")
	assert.Contains(t, body, "- Swc_SpeedMonitor.Ps_DiagService (provided)")
	assert.Contains(t, body, "- Swc_DiagTester.Rc_DiagService (required)")

	_, body = page(t, b, "interfaces/If_VehicleSpeed.md")
	assert.Contains(t, body, "| VehicleSpeed | VehicleSpeed_T | 0 |")
}

func TestCompositionGraph(t *testing.T) {
	b, err := Build(model.ExampleProject())
	require.NoError(t, err)

	_, body := page(t, b, "composition.md")
	assert.Contains(t, body, "```mermaid\ngraph LR\n")
	assert.Contains(t, body, `  c0["Swc_SpeedSensor"]`)
	assert.Contains(t, body, "  c0 -->|If_VehicleSpeed| c1\n  c1 -->|If_DiagService| c2\n")
}

func TestCompositionSkipsDanglingConnections(t *testing.T) {
	p := model.NewProject("Dangling")
	a := p.AddComponent(model.SoftwareComponent{Name: "Swc_A"}).UID
	p.AddConnection(model.PortConnection{ProviderSwcUID: a, RequesterSwcUID: "gone0001"})
	b, err := Build(p)
	require.NoError(t, err)
	_, body := page(t, b, "composition.md")
	assert.NotContains(t, body, "-->")
}

func TestBuildRejectsCollidingPages(t *testing.T) {
	p := model.NewProject("Dup")
	p.AddComponent(model.SoftwareComponent{Name: "Swc A"})
	p.AddComponent(model.SoftwareComponent{Name: "Swc-A"})
	_, err := Build(p)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Swc_A", "Swc_A"},
		{"a/b", "a-b"},
		{"../x", "x"},
		{"a  b", "a-b"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	b, err := Build(model.ExampleProject())
	require.NoError(t, err)

	written, err := Write(b, dir)
	require.NoError(t, err)
	require.Len(t, written, len(b.Paths()))
	assert.Equal(t, filepath.Join(dir, "components", "Swc_DiagTester.md"), written[0])

	got, err := os.ReadFile(filepath.Join(dir, "composition.md"))
	require.NoError(t, err)
	want, _ := b.Page("composition.md")
	assert.Equal(t, want, got)
}

func TestWriteFailure(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	b, err := Build(model.ExampleProject())
	require.NoError(t, err)
	_, err = Write(b, file)
	assert.ErrorIs(t, err, model.ErrIO)
}
