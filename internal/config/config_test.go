package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "format: csv\npolicy: skip\njoin_mode: left\nlimit: 10\nverbose: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Format: "csv", Policy: "skip", JoinMode: "left", Limit: 10, Verbose: true}, cfg)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "limit: 5\n"))
	require.NoError(t, err)

	want := Default()
	want.Limit = 5
	assert.Equal(t, want, cfg)
}

func TestLoadConfigDefaultPath(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultPath, []byte("format: table\n"), 0o600))
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":    "format: [csv\n",
		"bad format":  "format: xml\n",
		"bad policy":  "policy: maybe\n",
		"bad mode":    "join_mode: cross\n",
		"bad limit":   "limit: -1\n",
		"wrong types": "limit: many\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
