package tui

import (
	"errors"

	"TUI-M4-Manager/config"
	"TUI-M4-Manager/game"
	"TUI-M4-Manager/loader"
	"TUI-M4-Manager/picker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	lp "github.com/charmbracelet/lipgloss"
)

// AppState is the top-level screen.
type AppState int

const (
	StateLoading AppState = iota
	StateError
	StateFirstTimeSetup
	StateHome
)

func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateError:
		return "Error"
	case StateFirstTimeSetup:
		return "FirstTimeSetup"
	case StateHome:
		return "Home"
	default:
		return "Unknown"
	}
}

// Error screen messages
const (
	msgCantOpenSettings = "Cannot open settings file!"
	msgMalformed        = "Settings file is malformed!"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file to load and save
	ConfigPath string
	// Picker backs the Browse action; nil makes Browse clear the field
	Picker picker.Picker
	// Installer installs the mod loader from the home screen; nil disables it
	Installer *loader.Installer
	// Detect optionally suggests a game directory for a fresh setup
	Detect func() (string, bool)
	Styles Styles
}

// App is the root bubbletea model: Loading → Error | FirstTimeSetup | Home.
type App struct {
	state      AppState
	errMessage string
	fatalErr   error
	saving     bool // A settings save is in flight

	configPath string
	settings   config.Settings

	wizard *Wizard
	home   *Home

	picker    picker.Picker
	installer *loader.Installer
	detect    func() (string, bool)

	spinner spinner.Model
	keys    keyMap
	styles  Styles
	width   int
	height  int
}

// NewApp creates the app in the Loading state.
func NewApp(opts Options) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = opts.Styles.Key

	return &App{
		state:      StateLoading,
		configPath: opts.ConfigPath,
		picker:     opts.Picker,
		installer:  opts.Installer,
		detect:     opts.Detect,
		spinner:    s,
		keys:       defaultKeyMap(),
		styles:     opts.Styles,
	}
}

// State returns the current top-level state.
func (a *App) State() AppState { return a.state }

// ErrorMessage returns the message shown in the Error state.
func (a *App) ErrorMessage() string { return a.errMessage }

// Settings returns the settings currently in use.
func (a *App) Settings() config.Settings { return a.settings }

// Wizard returns the setup wizard, nil outside first-time setup.
func (a *App) Wizard() *Wizard { return a.wizard }

// Home returns the home screen, nil outside the Home state.
func (a *App) Home() *Home { return a.home }

// Err returns the error that forced the app to quit, if any.
func (a *App) Err() error { return a.fatalErr }

// Init loads the settings file in the background.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, loadSettingsCmd(a.configPath))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Quit) && !a.acceptsText() {
			return a, tea.Quit
		}

	case spinner.TickMsg:
		if a.state != StateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case settingsLoadedMsg:
		return a, a.handleSettingsLoaded(msg)

	case SetupDoneMsg:
		if a.state != StateFirstTimeSetup || a.saving {
			return a, nil
		}
		a.saving = true
		settings := a.settings
		settings.GameDir = msg.GameDir
		return a, saveSettingsCmd(a.configPath, settings)

	case settingsSavedMsg:
		if a.state != StateFirstTimeSetup || !a.saving {
			return a, nil
		}
		a.saving = false
		if msg.err != nil {
			// Nothing sensible to fall back to without a settings file
			log.Error("failed to save settings", "err", msg.err)
			a.fatalErr = msg.err
			return a, tea.Quit
		}
		log.Info("settings saved", "path", a.configPath, "game_dir", msg.settings.GameDir)
		a.settings = msg.settings
		return a, a.enterHome()

	case ReconfigureMsg:
		if a.state != StateHome {
			return a, nil
		}
		return a, a.enterSetup(a.settings.GameDir)
	}

	switch a.state {
	case StateFirstTimeSetup:
		return a, a.wizard.Update(msg)
	case StateHome:
		return a, a.home.Update(msg)
	}
	// Wizard and home messages arriving in any other state are dropped
	return a, nil
}

func (a *App) handleSettingsLoaded(msg settingsLoadedMsg) tea.Cmd {
	if a.state != StateLoading {
		return nil
	}

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, config.ErrFileNotFound):
			// First run
			log.Info("no settings file, starting setup", "path", a.configPath)
			return a.enterSetup("")
		case errors.Is(msg.err, config.ErrMalformedFile):
			log.Error("settings file is malformed", "err", msg.err)
			a.enterError(msgMalformed)
			return nil
		default:
			log.Error("cannot open settings file", "err", msg.err)
			a.enterError(msgCantOpenSettings)
			return nil
		}
	}

	a.settings = msg.settings
	switch {
	case a.settings.GameDir == "":
		log.Info("game directory not set, starting setup")
		return a.enterSetup("")
	case game.IsValidInstallDir(a.settings.GameDir):
		return a.enterHome()
	default:
		log.Warn("configured game directory is invalid, starting setup", "game_dir", a.settings.GameDir)
		return a.enterSetup(a.settings.GameDir)
	}
}

func (a *App) enterError(message string) {
	a.state = StateError
	a.errMessage = message
	a.wizard, a.home = nil, nil
}

func (a *App) enterSetup(dir string) tea.Cmd {
	if dir == "" && a.detect != nil {
		if found, ok := a.detect(); ok {
			log.Info("detected game directory", "dir", found)
			dir = found
		}
	}
	a.state = StateFirstTimeSetup
	a.wizard = NewWizard(a.picker, dir, a.styles)
	a.home = nil
	return a.wizard.Init()
}

func (a *App) enterHome() tea.Cmd {
	a.state = StateHome
	a.wizard = nil
	a.home = NewHome(a.settings.GameDir, a.installer, a.styles)
	return a.home.Init()
}

func (a *App) acceptsText() bool {
	return a.state == StateFirstTimeSetup && a.wizard.AcceptsText()
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width > 0 && (a.width < minWidth || a.height < minHeight) {
		return lp.Place(a.width, a.height, lp.Center, lp.Center,
			a.styles.Warning.Render("Terminal too small"))
	}

	var content string
	switch a.state {
	case StateLoading:
		content = a.spinner.View() + " " + a.styles.Heading.Render("Loading...")
	case StateError:
		content = lp.JoinVertical(lp.Center,
			a.styles.Error.Render(a.errMessage),
			"",
			renderFooter(a.styles, a.keys.Quit))
	case StateFirstTimeSetup:
		content = a.wizard.View(a.width)
	case StateHome:
		content = a.home.View(a.width)
	}

	if a.width == 0 {
		return content
	}
	return lp.Place(a.width, a.height, lp.Center, lp.Center, content)
}
