package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collection-diff/pkg/component"
	"github.com/NVIDIA/collection-diff/pkg/diff"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value int    `json:"value" yaml:"value" toml:"value"`
}

func testResult(t *testing.T) *diff.Result {
	t.Helper()
	src := diff.Side{
		Descriptor: diff.Descriptor{Kind: diff.SideSnapshot, CollectionID: "dv_1", CollectionName: "Web", SnapshotPath: "snaps/web.json"},
		Meta:       diff.CollectionMeta{ID: "dv_1", Name: "Web", Owner: "alice"},
		Metrics: []component.Component{
			{ID: "m1", Name: ptr.To("Revenue"), Description: ptr.To("line one\nline two\n")},
			{ID: "m2", Name: ptr.To("Orders")},
		},
		Dimensions: []component.Component{{ID: "d1", Name: ptr.To("Page"), Type: ptr.To("string")}},
	}
	tgt := diff.Side{
		Descriptor: diff.Descriptor{Kind: diff.SideLive, CollectionID: "dv_1", CollectionName: "Web"},
		Meta:       diff.CollectionMeta{ID: "dv_1", Name: "Web", Owner: "bob"},
		Metrics: []component.Component{
			{ID: "m1", Name: ptr.To("Revenue"), Description: ptr.To("line one\nline 2\n")},
			{ID: "m3", Name: ptr.To("Visits")},
		},
		Dimensions: []component.Component{{ID: "d1", Name: ptr.To("Page"), Type: ptr.To("int")}},
	}
	res, err := diff.Build(src, tgt, diff.ResultOptions{Version: "test"})
	require.NoError(t, err)
	return res
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.Serialize(context.Background(), []testConfig{{Name: "a", Value: 1}}))

	var out []testConfig
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []testConfig{{Name: "a", Value: 1}}, out)
}

func TestWriter_YAMLResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), testResult(t)))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "DiffResult", doc["kind"])
	assert.Equal(t, true, doc["has_changes"])
	assert.Contains(t, doc, "metadata_changes")
}

func TestWriter_TOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTOML, &buf).Serialize(context.Background(), testConfig{Name: "a", Value: 2}))
	assert.Contains(t, buf.String(), `name = "a"`)
	assert.Contains(t, buf.String(), "value = 2")
}

func TestWriter_TableResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), testResult(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2+4)
	assert.True(t, strings.HasPrefix(lines[0], "CATEGORY"))
	assert.Contains(t, buf.String(), "dimensions  d1")
	assert.Contains(t, buf.String(), "yes")
}

func TestWriter_TableGeneric(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]any{
		"b": 2,
		"a": map[string]any{"c": "x"},
	}))
	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Less(t, strings.Index(out, "a.c"), strings.Index(out, "b "))

	buf.Reset()
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]any{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

type rows struct{}

func (rows) TableHeader() []string { return []string{"A", "B"} }
func (rows) TableRows() [][]string { return [][]string{{"1", "2"}} }

func TestWriter_Tabular(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), rows{}))
	assert.Equal(t, "A  B\n-  -\n1  2\n", buf.String())
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatConsole, &buf).Serialize(context.Background(), testResult(t)))
	out := buf.String()

	assert.Contains(t, out, "Source: Web (dv_1, snapshot) snaps/web.json")
	assert.Contains(t, out, "Collection metadata changed:")
	assert.Contains(t, out, "owner: alice -> bob")
	assert.Contains(t, out, "Metrics: 2 -> 2 (+1 -1 ~1, 0 unchanged, 150.0% changed)")
	assert.Contains(t, out, "Dimensions: 1 -> 1")
	assert.Contains(t, out, "~ Page (d1) [BREAKING]")
	assert.Contains(t, out, "type: string -> int")
	assert.Contains(t, out, "-line two")
	assert.Contains(t, out, "+line 2")
	assert.Contains(t, out, "4 change(s) found\n1 breaking change(s)\n")
	assert.NotContains(t, out, "Orders (m2) [BREAKING]")
}

func TestWriteConsole_NoChanges(t *testing.T) {
	res, err := diff.Build(diff.Side{}, diff.Side{}, diff.ResultOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, res))
	assert.Contains(t, buf.String(), "No differences found")
	assert.NotContains(t, buf.String(), "breaking change(s)")
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	w := NewWriter(Format("xml"), &bytes.Buffer{})
	assert.Equal(t, FormatJSON, w.Format())
	assert.True(t, Format("xml").IsUnknown())
	assert.Len(t, SupportedFormats(), 5)
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := NewFileWriterOrStdout(FormatJSON, path)
	require.NoError(t, w.Serialize(context.Background(), testConfig{Name: "x"}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "x"`)

	assert.NotNil(t, NewFileWriterOrStdout(FormatJSON, " "))
}
