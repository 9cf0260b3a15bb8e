package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDistance(t *testing.T) {
	assert.Equal(t, 3, MaxDistance(""))
	assert.Equal(t, 3, MaxDistance("Web"))
	assert.Equal(t, 3, MaxDistance("Checkout"))
	assert.Equal(t, 4, MaxDistance("Web Analytics"))
	assert.Equal(t, 10, MaxDistance("Global Web Analytics Production"))
}

func TestSuggest(t *testing.T) {
	known := []string{"Web Analytics", "Mobile Analytics", "Web Analytic", "Web Analytiks", "Checkout", "Web Analytics"}

	tests := []struct {
		name  string
		ref   string
		limit int
		want  []Suggestion
	}{
		{
			name: "one character altered",
			ref:  "Web Analytica",
			want: []Suggestion{
				{Name: "Web Analytic", Distance: 1},
				{Name: "Web Analytics", Distance: 1},
				{Name: "Web Analytiks", Distance: 2},
			},
		},
		{
			name:  "limit",
			ref:   "Web Analytica",
			limit: 1,
			want:  []Suggestion{{Name: "Web Analytic", Distance: 1}},
		},
		{
			name: "exact match excluded",
			ref:  "Checkout",
			want: nil,
		},
		{
			name: "nothing close",
			ref:  "Inventory",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.ref, known, tt.limit))
		})
	}
}

func TestSuggest_SingleEdit(t *testing.T) {
	got := Suggest("Chekout", []string{"Checkout"}, 0)
	assert.Equal(t, []Suggestion{{Name: "Checkout", Distance: 1}}, got)
	assert.Equal(t, []string{"Checkout"}, SuggestionNames(got))
}
