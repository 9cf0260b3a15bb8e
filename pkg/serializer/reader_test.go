package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.json", FormatJSON},
		{"a.YAML", FormatYAML},
		{"a.yml", FormatYAML},
		{"cdiff.toml", FormatTOML},
		{"out.txt", FormatTable},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{name: "json", format: FormatJSON, input: `{"name": "a", "value": 3}`},
		{name: "yaml", format: FormatYAML, input: "name: a\nvalue: 3\n"},
		{name: "toml", format: FormatTOML, input: "name = \"a\"\nvalue = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			require.NoError(t, err)
			var got testConfig
			require.NoError(t, r.Deserialize(&got))
			assert.Equal(t, testConfig{Name: "a", Value: 3}, got)
			assert.NoError(t, r.Close())
		})
	}
}

func TestNewReader_Errors(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)
	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)

	var r *Reader
	assert.Error(t, r.Deserialize(&testConfig{}))
	assert.NoError(t, r.Close())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"z\"\nvalue = 9\nextra = true\n"), 0o600))

	got, err := FromFile[testConfig](path)
	require.NoError(t, err)
	assert.Equal(t, "z", got.Name)
	assert.Equal(t, 9, got.Value)

	_, err = FromFile[testConfig](filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	got, err = FromFile[testConfig](empty)
	require.NoError(t, err)
	assert.Equal(t, testConfig{}, *got)
}
