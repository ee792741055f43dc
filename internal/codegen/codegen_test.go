package codegen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swcgen/internal/model"
)

func render(t *testing.T, p *model.Project, opts ...Option) map[string]string {
	t.Helper()
	b, err := Render(p, opts...)
	require.NoError(t, err)
	out := make(map[string]string, len(b.Files()))
	for _, f := range b.Files() {
		out[f.Name] = string(f.Content)
	}
	return out
}

func TestCTypeTable(t *testing.T) {
	for _, b := range model.BaseTypes {
		assert.NotEmpty(t, CType(b), string(b))
	}
	assert.Equal(t, "uint16", CType(model.Uint16))
	assert.Equal(t, "int32", CType(model.Int32))
	assert.Equal(t, "boolean", CType(model.Boolean))
	assert.Equal(t, FallbackCType, CType("int128"))
	assert.Equal(t, FallbackCType, CType(""))
}

func TestOutputOrder(t *testing.T) {
	b, err := Render(model.ExampleProject())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Std_Types.h", "Rte_Type.h",
		"Swc_SpeedSensor.h", "Swc_SpeedSensor.c", "Rte_Swc_SpeedSensor.h",
		"Swc_SpeedMonitor.h", "Swc_SpeedMonitor.c", "Rte_Swc_SpeedMonitor.h",
		"Swc_DiagTester.h", "Swc_DiagTester.c", "Rte_Swc_DiagTester.h",
	}, b.Names())
}

func TestRenderIsDeterministic(t *testing.T) {
	p := model.ExampleProject()
	first := render(t, p)
	second := render(t, p)
	assert.Equal(t, first, second)
}

func TestRenameChangesOnlyThatComponent(t *testing.T) {
	p := model.ExampleProject()
	before := render(t, p)

	swc, ok := p.ComponentByName("Swc_SpeedMonitor")
	require.True(t, ok)
	swc.Name = "Swc_Watchdog"
	after := render(t, p)

	for _, n := range []string{"Swc_SpeedMonitor.h", "Swc_SpeedMonitor.c", "Rte_Swc_SpeedMonitor.h"} {
		assert.Contains(t, before, n)
		assert.NotContains(t, after, n)
	}
	for _, n := range []string{"Swc_Watchdog.h", "Swc_Watchdog.c", "Rte_Swc_Watchdog.h"} {
		assert.Contains(t, after, n)
	}
	for name, content := range before {
		if strings.Contains(name, "Swc_SpeedMonitor") || name == "Rte_Type.h" {
			continue
		}
		assert.Equal(t, content, after[name], name)
	}

	// In the shared file only the component's own entry differs.
	oldLines := strings.Split(before["Rte_Type.h"], "\n")
	newLines := strings.Split(after["Rte_Type.h"], "\n")
	require.Equal(t, len(oldLines), len(newLines))
	for i := range oldLines {
		if oldLines[i] == newLines[i] {
			continue
		}
		assert.Contains(t, oldLines[i], "Swc_SpeedMonitor")
		assert.Contains(t, newLines[i], "Swc_Watchdog")
	}
}

func TestUnknownBaseTypeFallsBack(t *testing.T) {
	p := model.NewProject("Fallback")
	p.AddImplType(model.ImplementationDataType{Name: "Impl_Wide", BaseType: "int128", ArraySize: 1})
	iface := p.AddInterface(model.Interface{Name: "If_Odd", Kind: model.SenderReceiver,
		DataElements: []model.DataElement{{Name: "Odd", BaseType: "complex64"}}}).UID
	p.AddComponent(model.SoftwareComponent{Name: "Swc_Odd", Ports: []model.Port{
		{Name: "Pp_Odd", Direction: model.Provided, InterfaceUID: iface},
	}})

	files := render(t, p)
	assert.Contains(t, files["Rte_Type.h"], "typedef uint8 Impl_Wide;")
	assert.Contains(t, files["Rte_Swc_Odd.h"], "Std_ReturnType Rte_Write_Pp_Odd_Odd(uint8 data);")
}

func TestRteAPIs(t *testing.T) {
	files := render(t, model.ExampleProject())

	sensor := files["Rte_Swc_SpeedSensor.h"]
	assert.Contains(t, sensor, "Std_ReturnType Rte_Write_Pp_VehicleSpeed_VehicleSpeed(VehicleSpeed_T data);")
	assert.Contains(t, sensor, "Std_ReturnType Rte_Write_Pp_VehicleSpeed_SpeedValid(SpeedValid_T data);")
	assert.Contains(t, sensor, "#ifndef RTE_SWC_SPEEDSENSOR_H")

	monitor := files["Rte_Swc_SpeedMonitor.h"]
	assert.Contains(t, monitor, "Std_ReturnType Rte_Read_Rp_VehicleSpeed_VehicleSpeed(VehicleSpeed_T* data);")

	tester := files["Rte_Swc_DiagTester.h"]
	assert.Contains(t, tester, "Std_ReturnType Rte_Call_Rc_DiagService_ReadDataById(DiagId_T dataId, uint8* data);")

	header := files["Swc_SpeedMonitor.h"]
	assert.Contains(t, header, "void Run_MonitorSpeed(void); /* timing, every 20 ms */")
	assert.Contains(t, header, "void Run_DiagHandler(void); /* init/background */")
	assert.Contains(t, header, "DiagStatus_T Swc_SpeedMonitor_Ps_DiagService_ReadDataById(DiagId_T dataId, uint8* data);")

	source := files["Swc_SpeedMonitor.c"]
	assert.Contains(t, source, "#include \"Swc_SpeedMonitor.h\"")
	assert.Contains(t, source, "void Run_MonitorSpeed(void)\n{")
	assert.Contains(t, source, "    (void)dataId;\n    (void)data;\n    return (DiagStatus_T)0;")
}

func TestRteTypeContents(t *testing.T) {
	files := render(t, model.ExampleProject())
	types := files["Rte_Type.h"]
	assert.Contains(t, types, "typedef uint16 Impl_uint16;")
	assert.Contains(t, types, "typedef Impl_uint16 VehicleSpeed_T;")
	assert.Contains(t, types, "#define DIAG_PENDING ((DiagStatus_T)1)")
	assert.Contains(t, types, "/* If_DiagService (client_server)")
	assert.Contains(t, types, "typedef struct Rte_CDS_Swc_DiagTester Rte_CDS_Swc_DiagTester;")

	std := files["Std_Types.h"]
	assert.Contains(t, std, "typedef uint16_t uint16;")
	assert.Contains(t, std, "typedef double float64;")
}

func TestImplTypeShapes(t *testing.T) {
	p := model.NewProject("Shapes")
	u8 := p.AddImplType(model.ImplementationDataType{Name: "Impl_u8", BaseType: model.Uint8}).UID
	p.AddImplType(model.ImplementationDataType{Name: "Impl_Buf", BaseType: model.Uint8, IsArray: true, ArraySize: 8})
	p.AddImplType(model.ImplementationDataType{Name: "Impl_Rec", IsStruct: true, StructMembers: []model.ImplMember{
		{Name: "id", Type: string(u8)},
		{Name: "value", Type: "float32"},
	}})
	types := render(t, p)["Rte_Type.h"]
	assert.Contains(t, types, "typedef uint8 Impl_Buf[8];")
	assert.Contains(t, types, "typedef struct {\n    Impl_u8 id;\n    float32 value;\n} Impl_Rec;")
}

func TestPortWithoutInterface(t *testing.T) {
	p := model.NewProject("Loose")
	p.AddComponent(model.SoftwareComponent{Name: "Swc_Loose", Ports: []model.Port{
		{Name: "Pp_None", Direction: model.Provided},
		{Name: "Rp_Gone", Direction: model.Required, InterfaceUID: "gone0001"},
	}})
	rc := Resolve(&p.Elements, &p.Components[0])
	require.Len(t, rc.Ports, 2)
	assert.Nil(t, rc.Ports[0].Interface)
	assert.Nil(t, rc.Ports[1].Interface)

	rte := render(t, p)["Rte_Swc_Loose.h"]
	assert.Contains(t, rte, "/* Pp_None: provided port, no interface */")
}

func TestCustomHeader(t *testing.T) {
	files := render(t, model.ExampleProject(), WithHeader("/* Copyright ACME */\n"))
	for name, content := range files {
		assert.True(t, strings.HasPrefix(content, "/* Copyright ACME */\n"), name)
	}
}

func TestRenderRejectsCollidingNames(t *testing.T) {
	p := model.NewProject("Dup")
	p.AddComponent(model.SoftwareComponent{Name: "Swc_A"})
	p.AddComponent(model.SoftwareComponent{Name: "Swc_A"})
	_, err := Render(p)
	assert.Error(t, err)

	p = model.NewProject("Slash")
	p.AddComponent(model.SoftwareComponent{Name: "../escape"})
	_, err = Render(p)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

func TestGenerateWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	p := model.ExampleProject()
	paths, err := Generate(p, dir)
	require.NoError(t, err)
	require.Len(t, paths, 11)
	assert.Equal(t, filepath.Join(dir, "Std_Types.h"), paths[0])

	b, err := Render(p)
	require.NoError(t, err)
	for i, f := range b.Files() {
		got, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(t, string(f.Content), string(got), f.Name)
	}

	// Second run overwrites with identical bytes.
	again, err := Generate(p, dir)
	require.NoError(t, err)
	assert.Equal(t, paths, again)
}

func TestWriteReportsWrittenFiles(t *testing.T) {
	dir := t.TempDir()
	p := model.ExampleProject()
	b, err := Render(p)
	require.NoError(t, err)

	// A directory where the third file should go makes that write fail.
	blocked := b.Files()[2].Name
	require.NoError(t, os.Mkdir(filepath.Join(dir, blocked), 0o755))

	written, err := Write(b, dir)
	var we *WriteError
	require.True(t, errors.As(err, &we), "got %v", err)
	assert.Equal(t, filepath.Join(dir, blocked), we.Path)
	assert.Equal(t, []string{filepath.Join(dir, "Std_Types.h"), filepath.Join(dir, "Rte_Type.h")}, we.Written)
	assert.Equal(t, we.Written, written)
	assert.ErrorIs(t, err, model.ErrIO)
}

func TestWriteMkdirFailure(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	b, err := Render(model.NewProject("Empty"))
	require.NoError(t, err)
	_, err = Write(b, filepath.Join(file, "out"))
	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Empty(t, we.Written)
}
