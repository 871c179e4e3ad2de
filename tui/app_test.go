package tui

import (
	"os"
	"path/filepath"
	"testing"

	"TUI-M4-Manager/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(configPath string) *App {
	return NewApp(Options{ConfigPath: configPath, Styles: DefaultStyles()})
}

// loadApp drives the app through the initial settings load.
func loadApp(t *testing.T, configPath string) *App {
	t.Helper()
	a := newTestApp(configPath)
	require.Equal(t, StateLoading, a.State())
	a.Update(loadSettingsCmd(configPath)())
	return a
}

func TestAppInitialState(t *testing.T) {
	a := newTestApp(filepath.Join(t.TempDir(), config.SettingsFile))
	assert.Equal(t, StateLoading, a.State())
	assert.NotNil(t, a.Init())
	assert.Contains(t, a.View(), "Loading...")
}

func TestAppSettingsTransitions(t *testing.T) {
	testCases := []struct {
		name      string
		setup     func(t *testing.T, path string)
		wantState AppState
		wantError string
	}{
		{
			name:      "fresh install",
			setup:     func(t *testing.T, path string) {},
			wantState: StateFirstTimeSetup,
		},
		{
			name: "settings path cannot be opened",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.Mkdir(path, 0755))
			},
			wantState: StateError,
			wantError: "Cannot open settings file!",
		},
		{
			name: "malformed settings",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("game_dir = = ="), 0644))
			},
			wantState: StateError,
			wantError: "Settings file is malformed!",
		},
		{
			name: "empty game dir",
			setup: func(t *testing.T, path string) {
				require.NoError(t, config.Save(path, config.Settings{GameDir: ""}))
			},
			wantState: StateFirstTimeSetup,
		},
		{
			name: "valid game dir",
			setup: func(t *testing.T, path string) {
				require.NoError(t, config.Save(path, config.Settings{GameDir: makeGameDir(t)}))
			},
			wantState: StateHome,
		},
		{
			name: "game dir missing executable",
			setup: func(t *testing.T, path string) {
				require.NoError(t, config.Save(path, config.Settings{GameDir: t.TempDir()}))
			},
			wantState: StateFirstTimeSetup,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), config.SettingsFile)
			tc.setup(t, path)

			a := loadApp(t, path)
			assert.Equal(t, tc.wantState, a.State())
			assert.Equal(t, tc.wantError, a.ErrorMessage())

			switch tc.wantState {
			case StateFirstTimeSetup:
				require.NotNil(t, a.Wizard())
				assert.Nil(t, a.Home())
			case StateHome:
				require.NotNil(t, a.Home())
				assert.Nil(t, a.Wizard())
			case StateError:
				assert.Contains(t, a.View(), tc.wantError)
			}
		})
	}
}

func TestAppFreshInstallStartsAtWelcome(t *testing.T) {
	a := loadApp(t, filepath.Join(t.TempDir(), config.SettingsFile))

	require.Equal(t, StateFirstTimeSetup, a.State())
	steps := a.Wizard().Steps()
	assert.Equal(t, StepWelcome, steps.Current().Kind())
	assert.False(t, steps.CanGoBack())
	assert.True(t, steps.CanContinue())
}

func TestAppInvalidGameDirPrefillsWizard(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFile)
	badDir := t.TempDir()
	require.NoError(t, config.Save(path, config.Settings{GameDir: badDir}))

	a := loadApp(t, path)
	assert.Equal(t, badDir, a.Wizard().Steps().GameDir())
}

func TestAppDetectPrefillsFreshSetup(t *testing.T) {
	found := makeGameDir(t)
	path := filepath.Join(t.TempDir(), config.SettingsFile)

	a := NewApp(Options{
		ConfigPath: path,
		Styles:     DefaultStyles(),
		Detect:     func() (string, bool) { return found, true },
	})
	a.Update(loadSettingsCmd(path)())

	require.Equal(t, StateFirstTimeSetup, a.State())
	assert.Equal(t, found, a.Wizard().Steps().GameDir())
}

func TestAppIgnoresWizardMessagesOutsideSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFile)

	a := newTestApp(path)
	for _, msg := range []tea.Msg{NextClickedMsg{}, PrevClickedMsg{}, StepMsg{Msg: BrowseRequestedMsg{}}, SetupDoneMsg{GameDir: "/x"}} {
		_, cmd := a.Update(msg)
		assert.Nil(t, cmd)
		assert.Equal(t, StateLoading, a.State())
	}

	require.NoError(t, os.Mkdir(path, 0755))
	a.Update(loadSettingsCmd(path)())
	require.Equal(t, StateError, a.State())
	for _, msg := range []tea.Msg{NextClickedMsg{}, StepMsg{Msg: DirectoryChangedMsg{Path: "/x"}}} {
		_, cmd := a.Update(msg)
		assert.Nil(t, cmd)
		assert.Equal(t, StateError, a.State())
	}
}

func TestAppSecondLoadResultIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFile)
	a := loadApp(t, path)
	require.Equal(t, StateFirstTimeSetup, a.State())

	a.Update(settingsLoadedMsg{err: &config.LoadError{Kind: config.CantOpenFile}})
	assert.Equal(t, StateFirstTimeSetup, a.State())
}

func TestAppCompleteSetupSavesAndGoesHome(t *testing.T) {
	gameDir := makeGameDir(t)
	path := filepath.Join(t.TempDir(), config.SettingsFile)
	a := loadApp(t, path)

	a.Update(NextClickedMsg{})
	a.Update(StepMsg{Msg: DirectoryChangedMsg{Path: gameDir}})
	a.Update(NextClickedMsg{})
	require.Equal(t, StepEnd, a.Wizard().Steps().Current().Kind())

	_, cmd := a.Update(keyType(tea.KeyEnter))
	done := runCmd(cmd)
	require.Equal(t, SetupDoneMsg{GameDir: gameDir}, done)

	_, cmd = a.Update(done)
	saved := runCmd(cmd)
	require.IsType(t, settingsSavedMsg{}, saved)

	a.Update(saved)
	assert.Equal(t, StateHome, a.State())
	assert.Equal(t, gameDir, a.Settings().GameDir)
	assert.NoError(t, a.Err())

	onDisk, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, gameDir, onDisk.GameDir)
}

func TestAppRepeatedFinishSavesOnce(t *testing.T) {
	gameDir := makeGameDir(t)
	path := filepath.Join(t.TempDir(), config.SettingsFile)
	a := loadApp(t, path)
	a.Update(NextClickedMsg{})
	a.Update(StepMsg{Msg: DirectoryChangedMsg{Path: gameDir}})
	a.Update(NextClickedMsg{})

	_, first := a.Update(runCmd(a.wizard.Update(keyType(tea.KeyEnter))))
	_, second := a.Update(runCmd(a.wizard.Update(keyType(tea.KeyEnter))))
	require.NotNil(t, first)
	assert.Nil(t, second, "finishing again while saving must not save twice")

	a.Update(runCmd(first))
	require.Equal(t, StateHome, a.State())
	home := a.Home()

	// A stray save result after reaching Home changes nothing
	_, cmd := a.Update(settingsSavedMsg{settings: config.Settings{GameDir: gameDir}})
	assert.Nil(t, cmd)
	assert.Same(t, home, a.Home())
}

func TestAppSaveFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	a := loadApp(t, filepath.Join(dir, config.SettingsFile))
	require.Equal(t, StateFirstTimeSetup, a.State())

	// Parent of the settings file is a regular file
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	a.configPath = filepath.Join(blocker, config.SettingsFile)

	_, cmd := a.Update(SetupDoneMsg{GameDir: makeGameDir(t)})
	_, cmd = a.Update(runCmd(cmd))

	assert.Error(t, a.Err())
	assert.Equal(t, tea.QuitMsg{}, runCmd(cmd))
}

func TestAppQuitKeys(t *testing.T) {
	a := loadApp(t, filepath.Join(t.TempDir(), config.SettingsFile))

	// Welcome step: q quits
	_, cmd := a.Update(keyRunes("q"))
	assert.Equal(t, tea.QuitMsg{}, runCmd(cmd))

	// Directory step: q is text
	a.Update(NextClickedMsg{})
	a.Update(keyRunes("q"))
	assert.Equal(t, StateFirstTimeSetup, a.State())
	assert.Equal(t, "q", a.Wizard().Steps().GameDir())

	_, cmd = a.Update(keyType(tea.KeyCtrlC))
	assert.Equal(t, tea.QuitMsg{}, runCmd(cmd))
}

func TestAppReconfigureFromHome(t *testing.T) {
	gameDir := makeGameDir(t)
	path := filepath.Join(t.TempDir(), config.SettingsFile)
	require.NoError(t, config.Save(path, config.Settings{GameDir: gameDir}))

	a := loadApp(t, path)
	require.Equal(t, StateHome, a.State())

	_, cmd := a.Update(keyRunes("s"))
	a.Update(runCmd(cmd))

	require.Equal(t, StateFirstTimeSetup, a.State())
	assert.Equal(t, gameDir, a.Wizard().Steps().GameDir())
}

func TestAppViewTooSmall(t *testing.T) {
	a := newTestApp(filepath.Join(t.TempDir(), config.SettingsFile))
	a.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, a.View(), "Terminal too small")

	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, a.View(), "Loading...")
}
