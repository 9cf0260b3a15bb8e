package diff

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldChange_JSON(t *testing.T) {
	b, err := json.Marshal(FieldChange{Old: "a", New: nil})
	require.NoError(t, err)
	assert.JSONEq(t, `["a", null]`, string(b))

	var fc FieldChange
	require.NoError(t, json.Unmarshal([]byte(`[1, "x"]`), &fc))
	assert.Equal(t, FieldChange{Old: float64(1), New: "x"}, fc)

	assert.Error(t, json.Unmarshal([]byte(`["only"]`), &fc))
}

func TestFieldChange_YAML(t *testing.T) {
	b, err := yaml.Marshal(map[string]FieldChange{"type": {Old: "int", New: "string"}})
	require.NoError(t, err)

	var out map[string]FieldChange
	require.NoError(t, yaml.Unmarshal(b, &out))
	assert.Equal(t, FieldChange{Old: "int", New: "string"}, out["type"])
}

func TestParseChangeTypes(t *testing.T) {
	got, err := ParseChangeTypes([]string{"added", "modified"})
	require.NoError(t, err)
	assert.Equal(t, []ChangeType{ChangeAdded, ChangeModified}, got)

	_, err = ParseChangeTypes([]string{"renamed"})
	assert.Error(t, err)
}

func TestFilters(t *testing.T) {
	recs := []ChangeRecord{
		{ID: "a", ChangeType: ChangeAdded},
		{ID: "b", ChangeType: ChangeUnchanged},
		{ID: "c", ChangeType: ChangeModified, IsBreaking: true},
		{ID: "d", ChangeType: ChangeRemoved},
	}

	assert.Equal(t, recs, FilterByChangeType(recs, nil))
	assert.Len(t, FilterChanged(recs), 3)

	groups := GroupByChangeType(recs)
	assert.Equal(t, []string{"c"}, groups[ChangeModified])
	assert.Equal(t, []string{"b"}, groups[ChangeUnchanged])

	removed := FilterByChangeType(recs, []ChangeType{ChangeRemoved})
	require.Len(t, removed, 1)
	assert.Equal(t, "d", removed[0].ID)
}

func TestTextDiff(t *testing.T) {
	assert.Empty(t, TextDiff("description", FieldChange{Old: "a", New: "b"}))

	out := TextDiff("description", FieldChange{Old: "line1\nline2\n", New: "line1\nline3\n"})
	assert.True(t, strings.Contains(out, "-line2"), out)
	assert.True(t, strings.Contains(out, "+line3"), out)
	assert.Contains(t, out, "description (source)")
}
