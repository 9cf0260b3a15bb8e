package diff

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collection-diff/pkg/component"
	"github.com/NVIDIA/collection-diff/pkg/header"
)

func side(id string, metrics, dimensions []component.Component) Side {
	return Side{
		Descriptor: Descriptor{Kind: SideLive, CollectionID: id, CollectionName: "Web"},
		Meta:       CollectionMeta{ID: id, Name: "Web", Owner: "alice"},
		Metrics:    metrics,
		Dimensions: dimensions,
	}
}

func TestBuild(t *testing.T) {
	src := side("dv_1",
		[]component.Component{comp("m1", "Revenue", "currency")},
		[]component.Component{comp("d1", "Page", "string"), comp("d2", "Browser", "string")},
	)
	tgt := side("dv_1",
		[]component.Component{comp("m1", "Revenue", "currency"), comp("m2", "Orders", "int")},
		[]component.Component{comp("d1", "Page", "int")},
	)

	res, err := Build(src, tgt, ResultOptions{Version: "v1.2.3"})
	require.NoError(t, err)

	assert.Equal(t, header.KindDiffResult, res.Kind)
	assert.Equal(t, APIVersion, res.APIVersion)
	assert.Equal(t, "v1.2.3", res.Metadata[header.MetadataVersion])
	assert.NotEmpty(t, res.Metadata[MetadataRunID])

	require.NotNil(t, res.Summary.Metrics)
	require.NotNil(t, res.Summary.Dimensions)
	assert.Equal(t, 1, res.Summary.Metrics.Added)
	assert.Equal(t, 1, res.Summary.Dimensions.Removed)
	assert.Equal(t, 1, res.Summary.Dimensions.Modified)
	assert.Equal(t, 3, res.Summary.TotalChanges)
	assert.True(t, res.HasChanges)

	assert.Len(t, Breaking(res.Dimensions), 1)
	assert.Equal(t, ChangeUnchanged, res.MetadataChanges.ChangeType)
}

func debugLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestBuild_DebugLogs(t *testing.T) {
	logs := debugLogs(t)

	src := side("dv_1", nil, []component.Component{comp("d1", "Page", "string"), comp("d2", "Browser", "string")})
	tgt := side("dv_1", nil, []component.Component{comp("d1", "Page", " int ")})

	_, err := Build(src, tgt, ResultOptions{DimensionsOnly: true})
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, `"msg":"category compared","category":"dimensions","added":null,"removed":["d2"],"modified":["d1"]`)
	assert.Contains(t, out, `"msg":"field changed","id":"d1","field":"type","old":"string","new":"int"`)
}

func TestBuild_CategorySelection(t *testing.T) {
	src := side("dv_1", nil, []component.Component{comp("d1", "Page", "string")})
	tgt := side("dv_1", []component.Component{comp("m1", "Revenue", "currency")}, nil)

	res, err := Build(src, tgt, ResultOptions{DimensionsOnly: true})
	require.NoError(t, err)
	assert.Nil(t, res.Summary.Metrics)
	assert.Nil(t, res.Metrics)
	require.NotNil(t, res.Summary.Dimensions)
	assert.Equal(t, 1, res.Summary.Dimensions.Removed)

	res, err = Build(src, tgt, ResultOptions{MetricsOnly: true})
	require.NoError(t, err)
	assert.Nil(t, res.Summary.Dimensions)
	assert.Equal(t, 1, res.Summary.TotalChanges)

	_, err = Build(src, tgt, ResultOptions{MetricsOnly: true, DimensionsOnly: true})
	assert.Error(t, err)
}

func TestBuild_ShowOnlyDoesNotAffectSummary(t *testing.T) {
	src := side("dv_1", []component.Component{comp("m1", "Revenue", "currency"), comp("m2", "Orders", "int")}, nil)
	tgt := side("dv_1", []component.Component{comp("m1", "Revenue", "currency"), comp("m3", "Visits", "int")}, nil)

	res, err := Build(src, tgt, ResultOptions{ShowOnly: []ChangeType{ChangeAdded}})
	require.NoError(t, err)

	require.Len(t, res.Metrics, 1)
	assert.Equal(t, "m3", res.Metrics[0].ID)
	assert.Equal(t, 1, res.Summary.Metrics.Removed)
	assert.Equal(t, 1, res.Summary.Metrics.Unchanged)
}

func TestBuild_MetadataChangeAloneIsNotADifference(t *testing.T) {
	src := side("dv_1", nil, nil)
	tgt := side("dv_1", nil, nil)
	tgt.Meta.Owner = "bob"

	res, err := Build(src, tgt, ResultOptions{})
	require.NoError(t, err)
	assert.Equal(t, ChangeModified, res.MetadataChanges.ChangeType)
	assert.False(t, res.HasChanges)
	assert.Equal(t, StatusNoDifferences, ExitStatus(res, nil))
}

func TestResult_JSON(t *testing.T) {
	src := comp("m1", "Revenue", "currency")
	src.Description = ptr.To("old")
	tgt := comp("m1", "Revenue", "currency")
	tgt.Description = nil

	res, err := Build(
		side("dv_1", []component.Component{src}, nil),
		side("dv_1", []component.Component{tgt}, nil),
		ResultOptions{MetricsOnly: true},
	)
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "DiffResult", doc["kind"])
	assert.Equal(t, true, doc["has_changes"])

	metrics := doc["metrics"].([]any)
	rec := metrics[0].(map[string]any)
	assert.Equal(t, "modified", rec["change_type"])
	assert.Equal(t, []any{"old", nil}, rec["changed_fields"].(map[string]any)["description"])
}

func TestExitStatus(t *testing.T) {
	changed := &Result{
		HasChanges: true,
		Summary: Summary{
			Metrics:      &CategorySummary{SourceCount: 4, Modified: 1, ChangedPct: 25},
			TotalChanges: 1,
		},
	}

	tests := []struct {
		name      string
		result    *Result
		threshold *float64
		want      Status
	}{
		{name: "nil result", want: StatusNoDifferences},
		{name: "no changes", result: &Result{}, threshold: ptr.To(0.0), want: StatusNoDifferences},
		{name: "changes without threshold", result: changed, want: StatusDifferences},
		{name: "below threshold", result: changed, threshold: ptr.To(50.0), want: StatusDifferences},
		{name: "equal to threshold", result: changed, threshold: ptr.To(25.0), want: StatusDifferences},
		{name: "above threshold", result: changed, threshold: ptr.To(10.0), want: StatusThresholdExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitStatus(tt.result, tt.threshold)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}

	assert.Equal(t, 0, int(StatusNoDifferences))
	assert.Equal(t, 2, int(StatusDifferences))
	assert.Equal(t, 3, int(StatusThresholdExceeded))
}
