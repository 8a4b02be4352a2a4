package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxbuddy/boxbuddy/internal/platform"
)

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	fc, err := LoadFile(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, platform.DistroboxCommand, fc.Tool)
	assert.Empty(t, fc.Terminal)
	assert.Equal(t, platform.HistoryFileName, filepath.Base(fc.HistoryDB))
	assert.Equal(t, platform.LogFileName, filepath.Base(fc.LogFile))
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxbuddy.yaml")
	content := "tool: /opt/distrobox/bin/distrobox\nterminal: konsole\nhistory_db: /tmp/h.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fc, err := LoadFile(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/distrobox/bin/distrobox", fc.Tool)
	assert.Equal(t, "konsole", fc.Terminal)
	assert.Equal(t, "/tmp/h.db", fc.HistoryDB)
}

func TestLoadFile_SearchesConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, platform.AppDirName)
	require.NoError(t, platform.CreateDirectoryIfNotExists(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("terminal: auto\n"), 0o644))

	fc, err := LoadFile(NewViper(), "")
	require.NoError(t, err)
	assert.Empty(t, fc.Terminal, "auto maps to detection")
}

func TestLoadFile_MissingExplicitPath(t *testing.T) {
	_, err := LoadFile(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tool: [unterminated\n"), 0o644))

	_, err := LoadFile(NewViper(), path)
	assert.Error(t, err)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BOXBUDDY_TERMINAL", "xterm")
	t.Setenv("BOXBUDDY_HISTORY_DB", ":memory:")

	fc, err := LoadFile(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "xterm", fc.Terminal)
	assert.Equal(t, ":memory:", fc.HistoryDB)
}
