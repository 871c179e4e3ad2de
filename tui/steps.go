package tui

import (
	"fmt"
	"strings"

	"TUI-M4-Manager/game"
	"TUI-M4-Manager/picker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// StepKind identifies a first-time setup step.
type StepKind int

const (
	StepWelcome StepKind = iota
	StepFindGameDirectory
	StepEnd

	stepKindCount
)

// Fails to compile when a StepKind is added or removed; update every
// switch over StepKind in this file and then the constant below.
var _ = [1]struct{}{}[stepKindCount-3]

func (k StepKind) String() string {
	switch k {
	case StepWelcome:
		return "Welcome"
	case StepFindGameDirectory:
		return "Game directory"
	case StepEnd:
		return "Done"
	default:
		return "Unknown"
	}
}

// Step is one screen of the setup wizard. Only the game directory step
// carries state.
type Step struct {
	kind StepKind

	input    textinput.Model
	browsing bool     // A picker request is in flight
	matches  []string // Candidates from the last ambiguous tab completion
}

func newStep(kind StepKind) Step {
	return Step{kind: kind}
}

func newGameDirStep(dir string) Step {
	t := textinput.New()
	t.Placeholder = "Game directory"
	t.CharLimit = 4096
	t.Width = 50
	t.Prompt = "› "
	t.SetValue(dir)
	t.Focus()
	return Step{kind: StepFindGameDirectory, input: t}
}

// Kind returns the step's kind.
func (s *Step) Kind() StepKind { return s.kind }

// Dir returns the directory held by the game directory step.
func (s *Step) Dir() string {
	if s.kind != StepFindGameDirectory {
		return ""
	}
	return strings.TrimSpace(s.input.Value())
}

// focus starts the text cursor blinking on steps that take input.
func (s *Step) focus() tea.Cmd {
	if s.kind != StepFindGameDirectory {
		return nil
	}
	return s.input.Focus()
}

// Browsing reports whether a directory picker request is pending.
func (s *Step) Browsing() bool { return s.browsing }

// CanContinue gates forward navigation out of this step.
func (s *Step) CanContinue() bool {
	switch s.kind {
	case StepWelcome:
		return true
	case StepFindGameDirectory:
		return game.IsValidInstallDir(s.Dir())
	case StepEnd:
		return false
	default:
		return false
	}
}

// CanGoBack gates backward navigation out of this step.
func (s *Step) CanGoBack() bool {
	switch s.kind {
	case StepWelcome:
		return false
	case StepFindGameDirectory, StepEnd:
		return true
	default:
		return false
	}
}

func (s *Step) update(msg tea.Msg, p picker.Picker, keys keyMap) tea.Cmd {
	switch s.kind {
	case StepWelcome, StepEnd:
		return nil
	case StepFindGameDirectory:
		return s.updateGameDir(msg, p, keys)
	default:
		return nil
	}
}

func (s *Step) updateGameDir(msg tea.Msg, p picker.Picker, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case DirectoryChangedMsg:
		if msg.FromPicker {
			s.browsing = false
		}
		s.input.SetValue(msg.Path)
		s.input.CursorEnd()
		s.matches = nil
		return nil

	case BrowseRequestedMsg:
		if s.browsing {
			return nil
		}
		s.browsing = true
		return browseCmd(p)

	case tea.KeyMsg:
		if key.Matches(msg, keys.Complete) {
			value, matches := completeDir(s.input.Value())
			s.input.SetValue(value)
			s.input.CursorEnd()
			s.matches = matches
			return nil
		}
		before := s.input.Value()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() != before {
			s.matches = nil
		}
		return cmd
	}

	// Cursor blink and friends
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *Step) view(styles Styles) string {
	switch s.kind {
	case StepWelcome:
		return s.welcomeView(styles)
	case StepFindGameDirectory:
		return s.gameDirView(styles)
	case StepEnd:
		return s.endView(styles)
	default:
		return ""
	}
}

func (s *Step) welcomeView(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Welcome to M4!") + "\n")
	b.WriteString(styles.Text.Render("We'll need to do some setup before you can continue."))
	return b.String()
}

func (s *Step) gameDirView(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Please select your game directory.") + "\n")

	valid := s.CanContinue()
	in := s.input
	if s.Dir() != "" {
		if valid {
			in.TextStyle = styles.InputValid
		} else {
			in.TextStyle = styles.InputInvalid
		}
	}
	b.WriteString(in.View() + "\n\n")

	switch {
	case s.browsing:
		b.WriteString(styles.Warning.Render("Waiting for the file chooser…"))
	case s.Dir() == "":
		b.WriteString(styles.Faint.Render("Type a path, press tab to complete or ctrl+o to browse."))
	case valid:
		b.WriteString(styles.Success.Render(fmt.Sprintf("✓ Found %s", game.GameExecutable)))
	default:
		b.WriteString(styles.Error.Render(fmt.Sprintf("✗ %s not found in this directory", game.GameExecutable)))
	}

	if len(s.matches) > 0 {
		const maxShown = 5
		b.WriteString("\n")
		for i, m := range s.matches {
			if i == maxShown {
				b.WriteString("\n" + styles.Faint.Render(fmt.Sprintf("… %d more", len(s.matches)-maxShown)))
				break
			}
			b.WriteString("\n" + styles.Faint.Render(m))
		}
	}
	return b.String()
}

func (s *Step) endView(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Setup complete!") + "\n")
	b.WriteString(styles.Text.Render("Press enter to save your settings and continue."))
	return b.String()
}

// Steps is the ordered list of setup steps and the index of the current one.
// 0 <= current < len(steps) always holds.
type Steps struct {
	steps   []Step
	current int
	picker  picker.Picker
	keys    keyMap
}

// NewSteps builds the setup sequence; dir prefills the game directory step.
func NewSteps(p picker.Picker, dir string) *Steps {
	return &Steps{
		steps: []Step{
			newStep(StepWelcome),
			newGameDirStep(dir),
			newStep(StepEnd),
		},
		picker: p,
		keys:   defaultKeyMap(),
	}
}

// Current returns the active step.
func (s *Steps) Current() *Step { return &s.steps[s.current] }

// Index returns the position of the active step.
func (s *Steps) Index() int { return s.current }

// Len returns the number of steps.
func (s *Steps) Len() int { return len(s.steps) }

// CanContinue reports whether the current step allows moving forward.
func (s *Steps) CanContinue() bool { return s.Current().CanContinue() }

// CanGoBack reports whether the current step allows moving back.
func (s *Steps) CanGoBack() bool { return s.Current().CanGoBack() }

// HasNext reports whether Advance would move.
func (s *Steps) HasNext() bool {
	return s.current+1 < len(s.steps) && s.CanContinue()
}

// HasPrev reports whether GoBack would move.
func (s *Steps) HasPrev() bool {
	return s.current > 0 && s.CanGoBack()
}

// Advance moves to the next step when allowed.
func (s *Steps) Advance() {
	if s.HasNext() {
		s.current++
	}
}

// GoBack moves to the previous step when allowed.
func (s *Steps) GoBack() {
	if s.HasPrev() {
		s.current--
	}
}

// GameDir returns the directory entered on the game directory step.
func (s *Steps) GameDir() string {
	for i := range s.steps {
		if s.steps[i].kind == StepFindGameDirectory {
			return s.steps[i].Dir()
		}
	}
	return ""
}

// Update routes msg to the current step only.
func (s *Steps) Update(msg tea.Msg) tea.Cmd {
	// A finished picker request frees the browse button even if the user
	// has navigated away from the step that asked for it
	if dm, ok := msg.(DirectoryChangedMsg); ok && dm.FromPicker {
		for i := range s.steps {
			s.steps[i].browsing = false
		}
	}
	return s.Current().update(msg, s.picker, s.keys)
}

// View renders the current step.
func (s *Steps) View(styles Styles) string {
	return s.Current().view(styles)
}
