package tui

import (
	"fmt"
	"strings"

	"TUI-M4-Manager/game"
	"TUI-M4-Manager/loader"
	"TUI-M4-Manager/mods"
	"TUI-M4-Manager/types"
	"TUI-M4-Manager/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	lp "github.com/charmbracelet/lipgloss"
)

// Home is the main screen once a valid game directory is configured.
type Home struct {
	gameDir     string
	loaderState types.LoaderState
	installer   *loader.Installer
	install     loader.Progress
	progressBar progress.Model

	mods     []mods.Mod
	cursor   int
	scanning bool

	status string
	err    error

	keys   keyMap
	styles Styles
}

// NewHome creates the home screen for gameDir.
func NewHome(gameDir string, installer *loader.Installer, styles Styles) *Home {
	return &Home{
		gameDir:   gameDir,
		installer: installer,
		progressBar: progress.New(
			progress.WithSolidFill("#0000FF"),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		),
		keys:   defaultKeyMap(),
		styles: styles,
	}
}

// Init checks for the loader and scans the mods folder.
func (h *Home) Init() tea.Cmd {
	h.refreshLoaderState()
	h.scanning = true
	return scanModsCmd(h.gameDir)
}

func (h *Home) refreshLoaderState() {
	if game.HasModLoaderInstalled(h.gameDir) {
		h.loaderState = types.LoaderInstalled
	} else {
		h.loaderState = types.LoaderMissing
	}
}

// Mods returns the mods found by the last scan.
func (h *Home) Mods() []mods.Mod { return h.mods }

// LoaderState returns the mod loader state shown on screen.
func (h *Home) LoaderState() types.LoaderState { return h.loaderState }

// Update handles home screen keys and background results.
func (h *Home) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h.handleKey(msg)

	case modsScannedMsg:
		h.scanning = false
		h.err = msg.err
		h.mods = msg.mods
		if h.cursor >= len(h.mods) {
			h.cursor = max(len(h.mods)-1, 0)
		}
		return nil

	case modToggledMsg:
		if msg.err != nil {
			h.err = msg.err
			return nil
		}
		if msg.index < len(h.mods) && h.mods[msg.index].Dir == msg.mod.Dir {
			h.mods[msg.index] = msg.mod
		}
		return nil

	case loaderProgressMsg:
		h.install = msg.progress
		cmd := h.progressBar.SetPercent(msg.progress.Fraction())
		return tea.Batch(cmd, waitForLoaderCmd(msg.ch))

	case loaderInstalledMsg:
		if msg.err != nil {
			log.Error("mod loader install failed", "err", msg.err)
			h.loaderState = types.LoaderFailed
			h.err = msg.err
			return nil
		}
		h.loaderState = types.LoaderInstalled
		h.status = "Mod loader installed."
		h.scanning = true
		return scanModsCmd(h.gameDir)

	case gameLaunchedMsg:
		if msg.err != nil {
			h.err = msg.err
			h.status = ""
		}
		return nil

	case progress.FrameMsg:
		model, cmd := h.progressBar.Update(msg)
		h.progressBar = model.(progress.Model)
		return cmd
	}
	return nil
}

func (h *Home) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, h.keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, h.keys.Down):
		if h.cursor < len(h.mods)-1 {
			h.cursor++
		}
	case key.Matches(msg, h.keys.Toggle):
		if len(h.mods) > 0 {
			return toggleModCmd(h.cursor, h.mods[h.cursor])
		}
	case key.Matches(msg, h.keys.Rescan):
		h.err = nil
		h.status = ""
		// The install result settles the loader state
		if h.loaderState != types.LoaderInstalling {
			h.refreshLoaderState()
		}
		h.scanning = true
		return scanModsCmd(h.gameDir)
	case key.Matches(msg, h.keys.Install):
		if !h.loaderState.CanInstall() || h.installer == nil {
			return nil
		}
		h.err = nil
		h.loaderState = types.LoaderInstalling
		h.install = loader.Progress{}
		return installLoaderCmd(h.installer, h.gameDir)
	case key.Matches(msg, h.keys.Launch):
		h.err = nil
		h.status = "Launching through Steam…"
		return launchGameCmd()
	case key.Matches(msg, h.keys.Setup):
		if h.loaderState == types.LoaderInstalling {
			return nil
		}
		return emit(ReconfigureMsg{})
	}
	return nil
}

// View renders the home screen.
func (h *Home) View(width int) string {
	var b strings.Builder

	b.WriteString(h.styles.Title.Render("M4") + "\n")
	b.WriteString(h.styles.Heading.Render("Game directory: ") + h.gameDir + "\n")
	b.WriteString(h.styles.Heading.Render("Mod loader:     ") + h.loaderView() + "\n\n")

	b.WriteString(h.styles.Heading.Render(fmt.Sprintf("Mods (%d)", len(h.mods))) + "\n")
	b.WriteString(h.modsView(width))

	if h.err != nil {
		b.WriteString("\n\n" + h.styles.Error.Render("Error: "+h.err.Error()))
	} else if h.status != "" {
		b.WriteString("\n\n" + h.styles.Success.Render(h.status))
	}

	keys := h.keys
	hasMods := len(h.mods) > 0
	keys.Up.SetEnabled(hasMods)
	keys.Down.SetEnabled(hasMods)
	keys.Toggle.SetEnabled(hasMods)
	keys.Install.SetEnabled(h.loaderState.CanInstall() && h.installer != nil)
	footer := renderFooter(h.styles, keys.Up, keys.Down, keys.Toggle, keys.Rescan, keys.Install, keys.Launch, keys.Setup, keys.Quit)

	return lp.JoinVertical(lp.Left, b.String(), "", footer)
}

func (h *Home) loaderView() string {
	switch h.loaderState {
	case types.LoaderInstalled:
		return h.styles.Success.Render(h.loaderState.String())
	case types.LoaderInstalling:
		return h.styles.Warning.Render(h.installView())
	case types.LoaderMissing, types.LoaderFailed:
		return h.styles.Error.Render(h.loaderState.String())
	default:
		return h.loaderState.String()
	}
}

func (h *Home) installView() string {
	switch h.install.Phase {
	case loader.PhaseExtracting:
		return fmt.Sprintf("Extracting %s %d/%d", h.progressBar.View(), h.install.Current, h.install.Total)
	case loader.PhaseDone:
		return "Verifying…"
	default:
		return fmt.Sprintf("Downloading %s %s / %s (%s)",
			h.progressBar.View(),
			util.FormatSize(h.install.Current),
			util.FormatSize(h.install.Total),
			util.FormatSpeed(h.install.Speed))
	}
}

func (h *Home) modsView(width int) string {
	if h.scanning && len(h.mods) == 0 {
		return h.styles.Faint.Render("Scanning…")
	}
	if len(h.mods) == 0 {
		return h.styles.Faint.Render("No mods found in " + mods.ModsDir(h.gameDir))
	}

	rowWidth := max(width-4, minWidth-4)
	var rows []string
	for i, m := range h.mods {
		check := "[ ]"
		if m.Config.Enabled {
			check = h.styles.Success.Render("[x]")
		}
		row := fmt.Sprintf("%s %s", check, m.Title())
		if v := m.DisplayVersion(); v != "" {
			row += " " + h.styles.Faint.Render(v)
		}
		if m.Config.Author != "" {
			row += h.styles.Faint.Render(" by " + m.Config.Author)
		}
		if i == h.cursor {
			row = h.styles.Selected.Width(rowWidth).Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
