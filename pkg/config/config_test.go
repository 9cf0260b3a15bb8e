package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collection-diff/pkg/errors"
)

func TestNewConfig_Defaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, "./snapshots", c.SnapshotDir())
	assert.Equal(t, 0, c.KeepLast())
	assert.Equal(t, 300*time.Second, c.CacheTTL())
	assert.Equal(t, "default", c.Profile())
	assert.Equal(t, "console", c.OutputFormat())
	assert.Nil(t, c.WarnThreshold())
	assert.False(t, c.Interactive())
	assert.False(t, c.ExtendedFields())
	assert.Empty(t, c.CatalogDir())
	assert.NoError(t, c.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	ignore := []string{"description"}
	threshold := 12.5
	c := NewConfig(
		WithSnapshotDir("/tmp/s"),
		WithKeepLast(4),
		WithCatalogDir("/tmp/c"),
		WithIgnoreFields(ignore),
		WithExtendedFields(true),
		WithWarnThreshold(&threshold),
		WithCacheTTL(time.Minute),
		WithProfile("prod"),
		WithInteractive(true),
		WithOutputFormat("json"),
	)

	ignore[0] = "mutated"
	threshold = 99
	assert.Equal(t, []string{"description"}, c.IgnoreFields())
	assert.Equal(t, 12.5, *c.WarnThreshold())

	*c.WarnThreshold() = 1
	assert.Equal(t, 12.5, *c.WarnThreshold())

	assert.Equal(t, "/tmp/s", c.SnapshotDir())
	assert.Equal(t, 4, c.KeepLast())
	assert.Equal(t, "/tmp/c", c.CatalogDir())
	assert.True(t, c.ExtendedFields())
	assert.Equal(t, time.Minute, c.CacheTTL())
	assert.Equal(t, "prod", c.Profile())
	assert.True(t, c.Interactive())
	assert.Equal(t, "json", c.OutputFormat())

	assert.Nil(t, NewConfig(WithWarnThreshold(&threshold), WithWarnThreshold(nil)).WarnThreshold())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults"},
		{name: "empty snapshot dir", opts: []Option{WithSnapshotDir("")}, wantErr: true},
		{name: "negative keep-last", opts: []Option{WithKeepLast(-1)}, wantErr: true},
		{name: "zero ttl", opts: []Option{WithCacheTTL(0)}, wantErr: true},
		{name: "negative threshold", opts: []Option{WithWarnThreshold(ptr.To(-1.0))}, wantErr: true},
		{name: "zero threshold", opts: []Option{WithWarnThreshold(ptr.To(0.0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "cdiff.toml",
			content: `snapshot_dir = "/data/snaps"
keep_last = 3
ignore_fields = ["description", "*Id"]
extended_fields = true
warn_threshold = 20.0
cache_ttl = "2m"
interactive = true
`,
		},
		{
			name: "yaml",
			file: "cdiff.yaml",
			content: `snapshot_dir: /data/snaps
keep_last: 3
ignore_fields: [description, "*Id"]
extended_fields: true
warn_threshold: 20
cache_ttl: 2m
interactive: true
`,
		},
		{
			name:    "json",
			file:    "cdiff.json",
			content: `{"snapshot_dir": "/data/snaps", "keep_last": 3, "ignore_fields": ["description", "*Id"], "extended_fields": true, "warn_threshold": 20, "cache_ttl": "2m", "interactive": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			f, err := LoadFile(path)
			require.NoError(t, err)

			c := NewConfig(f.Options()...)
			assert.Equal(t, "/data/snaps", c.SnapshotDir())
			assert.Equal(t, 3, c.KeepLast())
			assert.Equal(t, []string{"description", "*Id"}, c.IgnoreFields())
			assert.True(t, c.ExtendedFields())
			assert.Equal(t, 20.0, *c.WarnThreshold())
			assert.Equal(t, 2*time.Minute, c.CacheTTL())
			assert.True(t, c.Interactive())
			assert.Equal(t, "default", c.Profile(), "unset keys keep defaults")
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	f, err := LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, f.Options())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`cache_ttl = "soon"`), 0o600))
	_, err = LoadFile(bad)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	var nilFile *File
	assert.Nil(t, nilFile.Options())
}
