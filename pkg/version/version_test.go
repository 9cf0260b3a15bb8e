package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr error
	}{
		{name: "major only", input: "1", want: Format{Major: 1}},
		{name: "major minor", input: "1.0", want: Format{Major: 1}},
		{name: "v prefix", input: "v2.3", want: Format{Major: 2, Minor: 3}},
		{name: "spaces", input: " 1.1 ", want: Format{Major: 1, Minor: 1}},
		{name: "empty", input: "", wantErr: ErrEmptyVersion},
		{name: "three components", input: "1.0.0", wantErr: ErrTooManyComponents},
		{name: "non numeric", input: "1.x", wantErr: ErrNonNumeric},
		{name: "negative", input: "-1", wantErr: ErrNegativeComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_CompareAndReadable(t *testing.T) {
	v10 := Format{Major: 1}
	v11 := Format{Major: 1, Minor: 1}
	v20 := Format{Major: 2}

	assert.Equal(t, 0, v10.Compare(v10))
	assert.Equal(t, -1, v10.Compare(v11))
	assert.Equal(t, 1, v20.Compare(v11))
	assert.Equal(t, -1, v11.Compare(v20))

	assert.True(t, v11.Readable(v10))
	assert.False(t, v20.Readable(v10))
	assert.Equal(t, "1.1", v11.String())
}

func TestCurrent(t *testing.T) {
	info := Current()
	assert.Equal(t, Version, info.Version)
	assert.Contains(t, info.String(), "commit: "+Commit)
}
