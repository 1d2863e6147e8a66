package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"fixtures_dir": "./data",
		"session_db": "/tmp/session.db",
		"submit_latency": "250ms",
		"candidate_page_size": 10,
		"port": 9090
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "./data", cfg.FixturesDir)
	assert.Equal(t, "/tmp/session.db", cfg.SessionDB)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.SubmitLatency)
	assert.Equal(t, 10, cfg.CandidatePageSize)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_LatencyInMilliseconds(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"submit_latency": 1500}`))
	require.NoError(t, err)
	assert.Equal(t, Duration(1500*time.Millisecond), cfg.SubmitLatency)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{"empty path", func(*testing.T) string { return "" }, "config path is empty"},
		{"missing file", func(*testing.T) string { return "/nonexistent/path/config.json" }, "failed to read config file"},
		{"invalid json", func(t *testing.T) string { return writeConfig(t, `{ invalid json }`) }, "failed to parse config JSON"},
		{"bad duration", func(t *testing.T) string { return writeConfig(t, `{"submit_latency": "soon"}`) }, "invalid duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0644))

	assert.NoError(t, (&Config{FixturesDir: dir, Port: 8080}).Validate())
	assert.NoError(t, (&Config{}).Validate())

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"negative latency", Config{SubmitLatency: -1}, "submit_latency"},
		{"negative page size", Config{CandidatePageSize: -1}, "candidate_page_size"},
		{"port too large", Config{Port: 70000}, "port"},
		{"missing fixtures", Config{FixturesDir: filepath.Join(dir, "nope")}, "fixtures directory not found"},
		{"fixtures is a file", Config{FixturesDir: file}, "not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	file := Config{FixturesDir: "./from-file", CandidatePageSize: 8}
	env := Config{FixturesDir: "./from-env", DatabaseURL: "postgres://x", Port: 9000}

	got := file.MergeWithDefaults(env)
	assert.Equal(t, "./from-file", got.FixturesDir, "file values win")
	assert.Equal(t, 8, got.CandidatePageSize)
	assert.Equal(t, "postgres://x", got.DatabaseURL)
	assert.Equal(t, 9000, got.Port)

	assert.Equal(t, DefaultSessionDB, got.SessionDB)
	assert.Equal(t, Duration(DefaultSubmitLatency), got.SubmitLatency)
}

func TestMergeWithDefaults_PackageDefaults(t *testing.T) {
	got := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, DefaultPort, got.Port)
	assert.Equal(t, DefaultCandidatePageSize, got.CandidatePageSize)
	assert.Equal(t, Duration(1500*time.Millisecond), got.SubmitLatency)
	assert.Empty(t, got.FixturesDir)
}
