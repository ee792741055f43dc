package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swcgen/internal/frontmatter"
)

type meta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

func TestReadWriteRoundtrip(t *testing.T) {
	m := meta{Title: "Swc_SpeedSensor", Tags: []string{"swcgen/component"}}
	body := "# Swc_SpeedSensor\n\nports\n"

	data, err := frontmatter.Write(m, body)
	require.NoError(t, err)

	var got meta
	gotBody, err := frontmatter.Read(data, &got)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	assert.Equal(t, "\n"+body, string(gotBody))
}

func TestParseSplitsAtClosingDelimiter(t *testing.T) {
	fm, body, err := frontmatter.Parse([]byte("---\ntitle: x\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "title: x\n", string(fm))
	assert.Equal(t, "body\n", string(body))
}

func TestParseMissingOpen(t *testing.T) {
	_, _, err := frontmatter.Parse([]byte("no delimiter"))
	assert.Error(t, err)
}

func TestParseMissingClose(t *testing.T) {
	_, _, err := frontmatter.Parse([]byte("---\ntitle: x\n"))
	assert.Error(t, err)
}

func TestReadBadYAML(t *testing.T) {
	var m meta
	_, err := frontmatter.Read([]byte("---\ntags: {\n---\n"), &m)
	assert.Error(t, err)
}

func TestWriteNoBody(t *testing.T) {
	data, err := frontmatter.Write(meta{Title: "t"}, "")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: t\ntags: []\n---\n", string(data))
}
