package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func records(types ...ChangeType) []ChangeRecord {
	out := make([]ChangeRecord, 0, len(types))
	for _, ct := range types {
		out = append(out, ChangeRecord{ChangeType: ct})
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		records     []ChangeRecord
		source      int
		target      int
		wantPct     float64
		wantChanges int
	}{
		{
			name:    "empty both sides",
			wantPct: 0,
		},
		{
			name:        "empty source with additions",
			records:     records(ChangeAdded, ChangeAdded),
			target:      2,
			wantPct:     100,
			wantChanges: 2,
		},
		{
			name:        "quarter changed",
			records:     records(ChangeModified, ChangeUnchanged, ChangeUnchanged, ChangeUnchanged),
			source:      4,
			target:      4,
			wantPct:     25,
			wantChanges: 1,
		},
		{
			name:        "uncapped above 100",
			records:     records(ChangeRemoved, ChangeAdded, ChangeAdded, ChangeAdded),
			source:      1,
			target:      3,
			wantPct:     400,
			wantChanges: 4,
		},
		{
			name:        "all removed",
			records:     records(ChangeRemoved, ChangeRemoved),
			source:      2,
			target:      0,
			wantPct:     100,
			wantChanges: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.records, tt.source, tt.target)
			assert.InDelta(t, tt.wantPct, s.ChangedPct, 1e-9)
			assert.Equal(t, tt.wantChanges, s.Changes())
			assert.Equal(t, tt.wantChanges > 0, s.HasChanges())
			assert.NoError(t, s.Validate())
		})
	}
}

func TestCategorySummary_Validate(t *testing.T) {
	bad := CategorySummary{SourceCount: 3, TargetCount: 3, Added: 1, Unchanged: 3}
	assert.Error(t, bad.Validate())

	bad = CategorySummary{SourceCount: 2, TargetCount: 2, Modified: 1, Unchanged: 2}
	assert.Error(t, bad.Validate())

	good := CategorySummary{SourceCount: 3, TargetCount: 4, Added: 2, Removed: 1, Modified: 1, Unchanged: 1}
	assert.NoError(t, good.Validate())
}

func TestSummary_MaxChangedPct(t *testing.T) {
	var s Summary
	assert.Zero(t, s.MaxChangedPct())
	assert.False(t, s.HasChanges())

	s.set("metrics", CategorySummary{SourceCount: 10, Modified: 1, ChangedPct: 10})
	s.set("dimensions", CategorySummary{SourceCount: 2, Removed: 1, ChangedPct: 50})
	assert.InDelta(t, 50.0, s.MaxChangedPct(), 1e-9)
	assert.Equal(t, 2, s.TotalChanges)
	assert.True(t, s.HasChanges())
}
