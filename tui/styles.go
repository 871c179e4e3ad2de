package tui

import (
	lp "github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	colorSuccess = "10"  // Green for valid input / installed
	colorWarning = "11"  // Yellow for pending states
	colorInfo    = "12"  // Blue for keys and accents
	colorError   = "9"   // Red for errors
	colorFaint   = "240" // Gray for separators
	colorAccent  = "21"  // M4 blue
	colorSelect  = "236" // Selected row background
)

// Minimum usable terminal size
const (
	minWidth  = 46
	minHeight = 12
)

// Styles holds every style the UI renders with.
// It is built once and handed down to the screens.
type Styles struct {
	Title        lp.Style
	Heading      lp.Style
	Text         lp.Style
	Faint        lp.Style
	Error        lp.Style
	Success      lp.Style
	Warning      lp.Style
	Key          lp.Style
	Separator    lp.Style
	Button       lp.Style
	Selected     lp.Style
	InputValid   lp.Style
	InputInvalid lp.Style
	Box          lp.Style
}

// DefaultStyles returns the stock M4 look.
func DefaultStyles() Styles {
	return Styles{
		Title:        lp.NewStyle().Bold(true).Foreground(lp.Color(colorAccent)).MarginBottom(1),
		Heading:      lp.NewStyle().Bold(true),
		Text:         lp.NewStyle(),
		Faint:        lp.NewStyle().Faint(true).Italic(true),
		Error:        lp.NewStyle().Bold(true).Foreground(lp.Color(colorError)),
		Success:      lp.NewStyle().Foreground(lp.Color(colorSuccess)),
		Warning:      lp.NewStyle().Foreground(lp.Color(colorWarning)),
		Key:          lp.NewStyle().Foreground(lp.Color(colorInfo)),
		Separator:    lp.NewStyle().Foreground(lp.Color(colorFaint)),
		Button:       lp.NewStyle().Foreground(lp.Color(colorAccent)).Bold(true),
		Selected:     lp.NewStyle().Background(lp.Color(colorSelect)).Bold(true),
		InputValid:   lp.NewStyle().Foreground(lp.Color(colorSuccess)),
		InputInvalid: lp.NewStyle().Foreground(lp.Color(colorError)),
		Box: lp.NewStyle().
			Border(lp.RoundedBorder()).
			BorderForeground(lp.Color(colorInfo)).
			Padding(1, 2),
	}
}
