package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Analysis.MaxEntries)
	assert.Equal(t, NormalizerOptimized, cfg.Analysis.Normalizer)
	assert.Equal(t, ".txt", cfg.Scan.Extension)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordcount.yaml")
	yamlContent := `
analysis:
  max_entries: 25
  normalizer: default
scan:
  data_dir: /srv/texts
  workers: 4
server:
  port: 9090
  read_timeout: 5s
log:
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Analysis.MaxEntries)
	assert.Equal(t, NormalizerDefault, cfg.Analysis.Normalizer)
	assert.Equal(t, "/srv/texts", cfg.Scan.DataDir)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Log.JSON)
	// Unset keys keep their defaults.
	assert.Equal(t, ".txt", cfg.Scan.Extension)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("analysis: [not, a, map"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("analysis:\n  max_entries: 0\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "max_entries")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(fakeEnv(map[string]string{
		"WORDCOUNT_MAX_ENTRIES":    " 3 ",
		"WORDCOUNT_STOPWORDS_FILE": "/etc/stop.txt",
		"WORDCOUNT_DATA_DIR":       "/data",
		"WORDCOUNT_WORKERS":        "8",
		"WORDCOUNT_WRITE_TIMEOUT":  "1m",
		"WORDCOUNT_LOG_JSON":       "true",
		"OTHER_PORT":               "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analysis.MaxEntries)
	assert.Equal(t, "/etc/stop.txt", cfg.Analysis.StopwordsFile)
	assert.Equal(t, "/data", cfg.Scan.DataDir)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestApplyEnvRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "int", env: map[string]string{"WORDCOUNT_PORT": "eighty"}},
		{name: "bool", env: map[string]string{"WORDCOUNT_LOG_JSON": "sometimes"}},
		{name: "duration", env: map[string]string{"WORDCOUNT_READ_TIMEOUT": "5 parsecs"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, cfg.applyEnv(fakeEnv(tc.env)))
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Analysis.MaxEntries = 0
	cfg.Analysis.Normalizer = "fancy"
	cfg.Scan.Workers = 0
	cfg.Server.Port = 70000

	err := cfg.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"max_entries", "normalizer", "workers", "port"} {
		assert.ErrorContains(t, err, fragment)
	}
}
