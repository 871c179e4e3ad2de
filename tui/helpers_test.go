package tui

import (
	"os"
	"path/filepath"
	"testing"

	"TUI-M4-Manager/game"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// makeGameDir creates a directory that passes the install check.
func makeGameDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, game.GameExecutable), nil, 0644))
	return dir
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// runCmd executes cmd and returns its message, or nil for a nil cmd.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
