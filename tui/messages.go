package tui

import (
	"TUI-M4-Manager/config"
	"TUI-M4-Manager/loader"
	"TUI-M4-Manager/mods"

	tea "github.com/charmbracelet/bubbletea"
)

// Wizard messages. Step-local messages travel wrapped in StepMsg.
type (
	// PrevClickedMsg moves the wizard one step back
	PrevClickedMsg struct{}
	// NextClickedMsg moves the wizard one step forward
	NextClickedMsg struct{}
	// StepMsg carries a message for the current step
	StepMsg struct{ Msg tea.Msg }
	// SetupDoneMsg is emitted when the user finishes the wizard on the last step
	SetupDoneMsg struct{ GameDir string }

	// DirectoryChangedMsg replaces the directory on the game directory step.
	// FromPicker marks the completion of a browse request.
	DirectoryChangedMsg struct {
		Path       string
		FromPicker bool
	}
	// BrowseRequestedMsg opens the desktop directory chooser
	BrowseRequestedMsg struct{}
)

// Application messages
type (
	settingsLoadedMsg struct {
		settings config.Settings
		err      error
	}
	settingsSavedMsg struct {
		settings config.Settings
		err      error
	}

	// ReconfigureMsg asks the app to run setup again from the home screen
	ReconfigureMsg struct{}
)

// Home screen messages
type (
	modsScannedMsg struct {
		mods []mods.Mod
		err  error
	}
	modToggledMsg struct {
		index int
		mod   mods.Mod
		err   error
	}
	loaderProgressMsg struct {
		progress loader.Progress
		ch       <-chan tea.Msg // Listen again on this channel
	}
	loaderInstalledMsg struct{ err error }
	gameLaunchedMsg    struct{ err error }
)
