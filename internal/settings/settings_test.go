package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, root, content string) string {
	t.Helper()
	path := Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, used, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default(), *s)
	assert.Equal(t, log.InfoLevel, s.Level())
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	path := writeSettings(t, root, "output_dir: out/c\nlog_level: debug\nheader_file: banner.txt\nwatch:\n  debounce: 2s\n")

	s, used, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "out/c", s.OutputDir)
	assert.Equal(t, log.DebugLevel, s.Level())
	assert.Equal(t, 2*time.Second, s.Watch.Debounce)
	assert.Equal(t, filepath.Join(root, "banner.txt"), s.HeaderFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "output_dir: from-file\n")
	t.Setenv("SWCGEN_OUTPUT_DIR", "from-env")
	t.Setenv("SWCGEN_WATCH_DEBOUNCE", "1s")

	s, _, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.OutputDir)
	assert.Equal(t, time.Second, s.Watch.Debounce)
}

func TestLoadExplicitFile(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "output_dir: ignored\n")
	other := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("output_dir: custom\n"), 0o644))

	s, used, err := Load(root, other)
	require.NoError(t, err)
	assert.Equal(t, other, used)
	assert.Equal(t, "custom", s.OutputDir)

	_, _, err = Load(root, filepath.Join(root, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"bad level":      "log_level: loud\n",
		"bad duration":   "watch:\n  debounce: soon\n",
		"negative":       "watch:\n  debounce: -1s\n",
		"malformed yaml": "output_dir: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeSettings(t, root, content)
			_, _, err := Load(root, "")
			assert.Error(t, err)
		})
	}
}

func TestHeader(t *testing.T) {
	root := t.TempDir()
	s := Default()
	h, err := s.Header()
	require.NoError(t, err)
	assert.Empty(t, h)

	require.NoError(t, os.WriteFile(filepath.Join(root, "banner.txt"), []byte("/* ACME */\n"), 0o644))
	s.HeaderFile = filepath.Join(root, "banner.txt")
	h, err = s.Header()
	require.NoError(t, err)
	assert.Equal(t, "/* ACME */\n", h)

	s.HeaderFile = filepath.Join(root, "missing.txt")
	_, err = s.Header()
	assert.Error(t, err)
}

func TestWriteThenLoad(t *testing.T) {
	root := t.TempDir()
	want := Default()
	want.OutputDir = "build/rte"
	want.Watch.Debounce = 750 * time.Millisecond
	require.NoError(t, Write(root, want))

	got, used, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, Path(root), used)
	assert.Equal(t, want, *got)
}
