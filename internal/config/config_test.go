package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/internal/todo"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(dir, "sub", DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "sub", DefaultLogName), cfg.LogPath)
	assert.Equal(t, todo.FilterAll, cfg.Filter())
	assert.Equal(t, "a", cfg.Keys.Add)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_ReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	abs := filepath.Join(dir, "elsewhere", "tasks.db")
	content := `db_path = "` + filepath.ToSlash(abs) + `"
default_filter = "today"
dark_mode = true

[keys]
add = "n"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.DBPath))
	assert.Equal(t, todo.FilterToday, cfg.Filter())
	assert.True(t, cfg.DarkMode)
	assert.Equal(t, "n", cfg.Keys.Add)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "q", cfg.Keys.Quit)
}

func TestLoadOrCreate_EmptyDBPathFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`db_path = ""`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultDBName), cfg.DBPath)
}

func TestLoadOrCreate_RejectsUnknownFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`default_filter = "someday"`), 0o644))

	_, err := LoadOrCreate(path)
	assert.ErrorContains(t, err, "default_filter")
}

func TestLoadOrCreate_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`db_path = `), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, DefaultConfigFileName, filepath.Base(ResolveConfigPath()))
}
