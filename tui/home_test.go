package tui

import (
	"os"
	"path/filepath"
	"testing"

	"TUI-M4-Manager/game"
	"TUI-M4-Manager/loader"
	"TUI-M4-Manager/mods"
	"TUI-M4-Manager/types"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMod(t *testing.T, gameDir, folder string, cfg mods.ModConfig) {
	t.Helper()
	dir := filepath.Join(gameDir, mods.DefaultModsDir, folder)
	require.NoError(t, os.MkdirAll(dir, 0755))
	f, err := os.Create(filepath.Join(dir, mods.ConfigFile))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, toml.NewEncoder(f).Encode(cfg))
}

// newLoadedHome returns a home screen with its initial scan applied.
func newLoadedHome(t *testing.T, gameDir string) *Home {
	t.Helper()
	h := NewHome(gameDir, nil, DefaultStyles())
	msg := runCmd(h.Init())
	require.IsType(t, modsScannedMsg{}, msg)
	h.Update(msg)
	return h
}

func TestHomeScansMods(t *testing.T) {
	gameDir := makeGameDir(t)
	writeMod(t, gameDir, "b-mod", mods.ModConfig{Enabled: true, Name: "Beta", Version: "1.2"})
	writeMod(t, gameDir, "a-mod", mods.ModConfig{Name: "alpha", Author: "someone"})

	h := newLoadedHome(t, gameDir)
	require.Len(t, h.Mods(), 2)
	assert.Equal(t, "alpha", h.Mods()[0].Title())
	assert.Equal(t, "Beta", h.Mods()[1].Title())

	view := h.View(80)
	assert.Contains(t, view, "Mods (2)")
	assert.Contains(t, view, "v1.2.0")
	assert.Contains(t, view, "by someone")
}

func TestHomeNoMods(t *testing.T) {
	h := newLoadedHome(t, makeGameDir(t))
	assert.Empty(t, h.Mods())
	assert.Contains(t, h.View(80), "No mods found")

	// Toggling with nothing selected does nothing
	assert.Nil(t, h.Update(keyType(tea.KeySpace)))
}

func TestHomeToggleWritesConfig(t *testing.T) {
	gameDir := makeGameDir(t)
	writeMod(t, gameDir, "first", mods.ModConfig{Name: "First"})
	writeMod(t, gameDir, "second", mods.ModConfig{Name: "Second"})
	h := newLoadedHome(t, gameDir)

	h.Update(keyRunes("j"))
	msg := runCmd(h.Update(keyType(tea.KeySpace)))
	require.IsType(t, modToggledMsg{}, msg)
	h.Update(msg)

	assert.False(t, h.Mods()[0].Config.Enabled)
	assert.True(t, h.Mods()[1].Config.Enabled)

	onDisk, err := mods.Load(filepath.Join(gameDir, mods.DefaultModsDir, "second"))
	require.NoError(t, err)
	assert.True(t, onDisk.Config.Enabled)
}

func TestHomeCursorBounds(t *testing.T) {
	gameDir := makeGameDir(t)
	writeMod(t, gameDir, "one", mods.ModConfig{})
	writeMod(t, gameDir, "two", mods.ModConfig{})
	h := newLoadedHome(t, gameDir)

	h.Update(keyType(tea.KeyUp))
	assert.Equal(t, 0, h.cursor)
	h.Update(keyType(tea.KeyDown))
	h.Update(keyType(tea.KeyDown))
	assert.Equal(t, 1, h.cursor)
}

func TestHomeLoaderState(t *testing.T) {
	gameDir := makeGameDir(t)
	h := newLoadedHome(t, gameDir)
	assert.Equal(t, types.LoaderMissing, h.LoaderState())

	// No installer configured: install is unavailable
	assert.Nil(t, h.Update(keyRunes("i")))
	assert.Equal(t, types.LoaderMissing, h.LoaderState())

	require.NoError(t, os.WriteFile(filepath.Join(gameDir, game.LoaderLibrary), nil, 0644))
	h.Update(h.Update(keyRunes("r"))())
	assert.Equal(t, types.LoaderInstalled, h.LoaderState())
}

func TestHomeLoaderInstallResult(t *testing.T) {
	h := newLoadedHome(t, makeGameDir(t))
	h.loaderState = types.LoaderInstalling

	assert.Nil(t, h.Update(loaderInstalledMsg{err: assert.AnError}))
	assert.Equal(t, types.LoaderFailed, h.LoaderState())
	assert.Contains(t, h.View(80), assert.AnError.Error())

	h.loaderState = types.LoaderInstalling
	cmd := h.Update(loaderInstalledMsg{})
	assert.Equal(t, types.LoaderInstalled, h.LoaderState())
	assert.IsType(t, modsScannedMsg{}, runCmd(cmd))
}

func TestHomeRescanDuringInstallKeepsInstalling(t *testing.T) {
	gameDir := makeGameDir(t)
	h := NewHome(gameDir, loader.NewInstaller(), DefaultStyles())
	h.Update(runCmd(h.Init()))
	h.loaderState = types.LoaderInstalling

	cmd := h.Update(keyRunes("r"))
	assert.IsType(t, modsScannedMsg{}, runCmd(cmd))
	assert.Equal(t, types.LoaderInstalling, h.LoaderState())

	// A second install and setup stay blocked
	assert.Nil(t, h.Update(keyRunes("i")))
	assert.Nil(t, h.Update(keyRunes("s")))
	assert.Equal(t, types.LoaderInstalling, h.LoaderState())
}

func TestHomeSetupKey(t *testing.T) {
	h := newLoadedHome(t, makeGameDir(t))
	assert.Equal(t, ReconfigureMsg{}, runCmd(h.Update(keyRunes("s"))))

	h.loaderState = types.LoaderInstalling
	assert.Nil(t, h.Update(keyRunes("s")))
}
