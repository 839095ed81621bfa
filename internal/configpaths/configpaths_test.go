package configpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFile(t *testing.T) {
	tests := []struct {
		path               string
		wantJSON, wantYAML []string
		wantTOML           []string
	}{
		{path: "pad.yaml", wantYAML: []string{"pad.yaml"}},
		{path: "pad.YML", wantYAML: []string{"pad.YML"}},
		{path: "pad.toml", wantTOML: []string{"pad.toml"}},
		{path: "pad.json", wantJSON: []string{"pad.json"}},
		{path: "pad.conf", wantJSON: []string{"pad.conf"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			j, y, to := ConfigCandidatePaths(tt.path)
			assert.Equal(t, tt.wantJSON, j)
			assert.Equal(t, tt.wantYAML, y)
			assert.Equal(t, tt.wantTOML, to)
		})
	}
}

func TestConfigCandidatePathsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("HOME", "/home/pad")

	j, y, to := ConfigCandidatePaths("")
	require.NotEmpty(t, j)
	assert.Equal(t, "config.json", j[len(j)-1])
	assert.Contains(t, y, "config.yaml")
	assert.Contains(t, y, "config.yml")
	assert.Contains(t, to, "config.toml")
}

func TestLoadOrCreateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", KeyFileName)

	key, created, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, key, 2*keyBytes)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, created, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, key, again)
}

func TestLoadOrCreateKeyEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), KeyFileName)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, _, err := LoadOrCreateKey(path)
	assert.ErrorContains(t, err, "is empty")
}
