package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/todo", cfg.TodosURL)
	assert.Equal(t, "http://localhost:8080/users", cfg.UsersURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.MaxVisible)
}

func TestLoad_FileOverlayEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tada.yml")
	writeFile(t, path, "todos_url: https://api.example.com/todo\nlog_level: debug\nmax_visible: 7\n")
	writeFile(t, filepath.Join(dir, "tada.local.yml"), "log_level: warn\n")
	t.Setenv("TADA_USERS_URL", "https://api.example.com/users")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/todo", cfg.TodosURL)
	assert.Equal(t, "https://api.example.com/users", cfg.UsersURL)
	assert.Equal(t, "warn", cfg.LogLevel, "local overlay wins over the base file")
	assert.Equal(t, 7, cfg.MaxVisible)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tada.yml")
	writeFile(t, path, "max_visible: 7\n")
	t.Setenv("TADA_MAX_VISIBLE", "9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxVisible)

	t.Setenv("TADA_MAX_VISIBLE", "many")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{TodosURL: "/todo", UsersURL: "http://h/users", MaxVisible: 1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todos_url")
	assert.Contains(t, err.Error(), "max_visible")
}

func TestLocalOverlay(t *testing.T) {
	assert.Equal(t, "a/tada.local.yml", localOverlay("a/tada.yml"))
	assert.Equal(t, "b.local.yaml", localOverlay("b.yaml"))
	assert.Equal(t, "conf.local", localOverlay("conf"))
}
