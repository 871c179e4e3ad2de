package tui

import (
	"fmt"
	"strings"

	"TUI-M4-Manager/picker"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	lp "github.com/charmbracelet/lipgloss"
)

// Wizard is the first-time setup flow: the step sequence plus its
// Previous/Next controls.
type Wizard struct {
	steps  *Steps
	keys   keyMap
	styles Styles
}

// NewWizard creates a wizard whose game directory step starts at dir.
func NewWizard(p picker.Picker, dir string, styles Styles) *Wizard {
	return &Wizard{
		steps:  NewSteps(p, dir),
		keys:   defaultKeyMap(),
		styles: styles,
	}
}

// Steps exposes the underlying step sequence.
func (w *Wizard) Steps() *Steps { return w.steps }

// AcceptsText reports whether keystrokes go to a text field.
func (w *Wizard) AcceptsText() bool {
	return w.steps.Current().Kind() == StepFindGameDirectory
}

// Init focuses the first step.
func (w *Wizard) Init() tea.Cmd {
	return wrapStepCmd(w.steps.Current().focus())
}

// Update handles navigation and forwards step messages to the current step.
func (w *Wizard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.handleKey(msg)

	case PrevClickedMsg:
		from := w.steps.Index()
		w.steps.GoBack()
		log.Debug("wizard previous", "from", from, "to", w.steps.Index())
		return w.entered(from)

	case NextClickedMsg:
		from := w.steps.Index()
		w.steps.Advance()
		log.Debug("wizard next", "from", from, "to", w.steps.Index())
		return w.entered(from)

	case StepMsg:
		return wrapStepCmd(w.steps.Update(msg.Msg))
	}
	return nil
}

// entered restarts the cursor blink when navigation landed on a new step.
func (w *Wizard) entered(from int) tea.Cmd {
	if w.steps.Index() == from {
		return nil
	}
	return wrapStepCmd(w.steps.Current().focus())
}

func (w *Wizard) handleKey(msg tea.KeyMsg) tea.Cmd {
	onEnd := w.steps.Current().Kind() == StepEnd

	switch {
	case onEnd && key.Matches(msg, w.keys.Finish):
		return emit(SetupDoneMsg{GameDir: w.steps.GameDir()})
	case key.Matches(msg, w.keys.Next):
		return w.Update(NextClickedMsg{})
	case key.Matches(msg, w.keys.Prev):
		return w.Update(PrevClickedMsg{})
	case key.Matches(msg, w.keys.Browse):
		return w.Update(StepMsg{Msg: BrowseRequestedMsg{}})
	}
	return w.Update(StepMsg{Msg: msg})
}

// View renders the current step above the navigation controls.
func (w *Wizard) View(width int) string {
	content := w.steps.View(w.styles)

	var prev, next string
	if w.steps.HasPrev() {
		prev = w.styles.Button.Render("← Previous")
	}
	switch {
	case w.steps.Current().Kind() == StepEnd:
		next = w.styles.Button.Render("Finish ⏎")
	case w.steps.HasNext():
		next = w.styles.Button.Render("Next →")
	}

	innerWidth := width - 8
	if innerWidth < minWidth-8 {
		innerWidth = minWidth - 8
	}
	gap := innerWidth - lp.Width(prev) - lp.Width(next)
	if gap < 1 {
		gap = 1
	}
	controls := prev + strings.Repeat(" ", gap) + next

	progress := w.styles.Faint.Render(fmt.Sprintf("Step %d of %d · %s",
		w.steps.Index()+1, w.steps.Len(), w.steps.Current().Kind()))

	body := lp.JoinVertical(lp.Left, progress, "", content, "", controls)
	box := w.styles.Box.Width(innerWidth + 4).Render(body)

	return lp.JoinVertical(lp.Left, box, w.footer())
}

func (w *Wizard) footer() string {
	keys := w.keys
	keys.Prev.SetEnabled(w.steps.HasPrev())
	keys.Next.SetEnabled(w.steps.HasNext())
	onEnd := w.steps.Current().Kind() == StepEnd
	keys.Finish.SetEnabled(onEnd)
	browsing := w.steps.Current().Kind() == StepFindGameDirectory
	keys.Browse.SetEnabled(browsing && !w.steps.Current().Browsing())
	keys.Complete.SetEnabled(browsing)
	keys.Quit.SetEnabled(!browsing)

	return renderFooter(w.styles, keys.Prev, keys.Next, keys.Finish, keys.Browse, keys.Complete, keys.Quit, keys.ForceQuit)
}
