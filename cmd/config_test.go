package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *Config {
	return &Config{System: System{Port: "8080"}}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SHARE_PATHS", "a;b")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.System.Port)
	assert.Equal(t, uint8(1), cfg.System.LogLevel)
	assert.Equal(t, []string{"a", "b"}, cfg.Share.Paths)
	assert.Equal(t, 2*time.Second, cfg.Share.CacheTTL)
	assert.Equal(t, "raindrop", cfg.Metrics.Namespace)
	assert.Empty(t, cfg.DB.Host)
	assert.Equal(t, 720*time.Hour, cfg.Retention.Period)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	t.Setenv("RETENTION_PERIOD", "forever")

	_, err := loadConfig()
	assert.ErrorContains(t, err, "retention config")
}

func TestApplyServeFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	content := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(content, []byte("# hi"), 0o644))

	cfg := newTestConfig()
	err := applyServeFlags(cfg, []string{"-p", "9000", "-i", file, "-I", content, "-m", "hello", dir})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.System.Port)
	assert.Equal(t, []string{file, dir}, cfg.Share.Paths)
	assert.Equal(t, content, cfg.Share.ContentPath)
	assert.Equal(t, "hello", cfg.Share.Message)
}

func TestApplyServeFlags_RelativePathsMadeAbsolute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	t.Chdir(dir)

	cfg := newTestConfig()
	require.NoError(t, applyServeFlags(cfg, []string{"a.txt"}))

	require.Len(t, cfg.Share.Paths, 1)
	assert.True(t, filepath.IsAbs(cfg.Share.Paths[0]))
	assert.Equal(t, "a.txt", filepath.Base(cfg.Share.Paths[0]))
}

func TestApplyServeFlags_MessageOnly(t *testing.T) {
	cfg := newTestConfig()
	require.NoError(t, applyServeFlags(cfg, []string{"-m", "just words"}))
	assert.Empty(t, cfg.Share.Paths)
}

func TestApplyServeFlags_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"nothing to share", nil, "nothing to share"},
		{"blank message", []string{"-m", "   "}, "nothing to share"},
		{"port zero", []string{"-p", "0", "-m", "x"}, "invalid port"},
		{"port too large", []string{"-p", "65536", "-m", "x"}, "invalid port"},
		{"port not a number", []string{"-p", "http", "-m", "x"}, "invalid port"},
		{"missing path", []string{"-i", filepath.Join(dir, "nope")}, "shared path"},
		{"missing content file", []string{"-I", filepath.Join(dir, "nope")}, "content file"},
		{"content file is a directory", []string{"-I", dir}, "is a directory"},
		{"unknown flag", []string{"-x"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := applyServeFlags(newTestConfig(), tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, rest := splitCommand([]string{"view", "http://x"})
	assert.Equal(t, "view", cmd)
	assert.Equal(t, []string{"http://x"}, rest)

	cmd, rest = splitCommand([]string{"-m", "hi"})
	assert.Equal(t, "serve", cmd)
	assert.Equal(t, []string{"-m", "hi"}, rest)

	cmd, rest = splitCommand(nil)
	assert.Equal(t, "serve", cmd)
	assert.Empty(t, rest)
}
