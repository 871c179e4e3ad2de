package tui

import (
	"context"
	"errors"

	"TUI-M4-Manager/config"
	"TUI-M4-Manager/game"
	"TUI-M4-Manager/launch"
	"TUI-M4-Manager/loader"
	"TUI-M4-Manager/mods"
	"TUI-M4-Manager/picker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func loadSettingsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		settings, err := config.Load(path)
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

func saveSettingsCmd(path string, settings config.Settings) tea.Cmd {
	return func() tea.Msg {
		err := config.Save(path, settings)
		return settingsSavedMsg{settings: settings, err: err}
	}
}

// browseCmd resolves to the picked directory, or "" when the chooser was
// cancelled or failed. There is no timeout.
func browseCmd(p picker.Picker) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return DirectoryChangedMsg{FromPicker: true}
		}
		dir, err := p.PickDirectory(context.Background())
		if err != nil {
			if !errors.Is(err, picker.ErrCancelled) {
				log.Warn("directory picker failed", "err", err)
			}
			return DirectoryChangedMsg{FromPicker: true}
		}
		return DirectoryChangedMsg{Path: dir, FromPicker: true}
	}
}

// wrapStepCmd tags every message a step command produces as a StepMsg,
// including the members of a batch.
func wrapStepCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			wrapped := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				wrapped = append(wrapped, wrapStepCmd(c))
			}
			return wrapped
		default:
			return StepMsg{Msg: msg}
		}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func scanModsCmd(gameDir string) tea.Cmd {
	return func() tea.Msg {
		found, err := mods.Scan(gameDir)
		return modsScannedMsg{mods: found, err: err}
	}
}

func toggleModCmd(index int, mod mods.Mod) tea.Cmd {
	return func() tea.Msg {
		err := mods.SetEnabled(&mod, !mod.Config.Enabled)
		return modToggledMsg{index: index, mod: mod, err: err}
	}
}

// installLoaderCmd runs the install in the background and streams progress
// back through a channel the home screen keeps listening on.
func installLoaderCmd(in *loader.Installer, gameDir string) tea.Cmd {
	ch := make(chan tea.Msg, 8)
	go func() {
		defer close(ch)
		err := in.Install(context.Background(), gameDir, func(p loader.Progress) {
			// Drop progress updates rather than stall the download
			select {
			case ch <- loaderProgressMsg{progress: p, ch: ch}:
			default:
			}
		})
		ch <- loaderInstalledMsg{err: err}
	}()
	return waitForLoaderCmd(ch)
}

func waitForLoaderCmd(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func launchGameCmd() tea.Cmd {
	return func() tea.Msg {
		return gameLaunchedMsg{err: launch.Game(game.SteamAppID)}
	}
}
