package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "tokyonight",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),
}

// Catppuccin is the Catppuccin Mocha palette
var Catppuccin = Theme{
	Name: "catppuccin",

	Background:    lipgloss.Color("#1e1e2e"),
	Foreground:    lipgloss.Color("#cdd6f4"),
	ForegroundDim: lipgloss.Color("#6c7086"),

	Primary:   lipgloss.Color("#89b4fa"),
	Secondary: lipgloss.Color("#cba6f7"),
	Accent:    lipgloss.Color("#94e2d5"),

	Success: lipgloss.Color("#a6e3a1"),
	Warning: lipgloss.Color("#f9e2af"),
	Error:   lipgloss.Color("#f38ba8"),
	Info:    lipgloss.Color("#89b4fa"),

	Border:      lipgloss.Color("#45475a"),
	BorderFocus: lipgloss.Color("#89b4fa"),
	Selection:   lipgloss.Color("#313244"),
	Cursor:      lipgloss.Color("#cdd6f4"),
}

// Gruvbox is the Gruvbox dark palette
var Gruvbox = Theme{
	Name: "gruvbox",

	Background:    lipgloss.Color("#282828"),
	Foreground:    lipgloss.Color("#ebdbb2"),
	ForegroundDim: lipgloss.Color("#928374"),

	Primary:   lipgloss.Color("#83a598"),
	Secondary: lipgloss.Color("#d3869b"),
	Accent:    lipgloss.Color("#8ec07c"),

	Success: lipgloss.Color("#b8bb26"),
	Warning: lipgloss.Color("#fabd2f"),
	Error:   lipgloss.Color("#fb4934"),
	Info:    lipgloss.Color("#83a598"),

	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#83a598"),
	Selection:   lipgloss.Color("#3c3836"),
	Cursor:      lipgloss.Color("#ebdbb2"),
}

// themeOrder fixes the cycling order of the available themes
var themeOrder = []Theme{TokyoNight, Catppuccin, Gruvbox}

// Lookup returns the theme with the given name
func Lookup(name string) (Theme, bool) {
	for _, t := range themeOrder {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the named one in cycling order,
// wrapping around. An unknown name yields the first theme.
func Next(name string) Theme {
	for i, t := range themeOrder {
		if t.Name == name {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Theme Theme

	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDone     lipgloss.Style

	// Filter tabs
	FilterBar   lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Notices
	NoticeSuccess lipgloss.Style
	NoticeError   lipgloss.Style
	NoticeInfo    lipgloss.Style

	// Task row accents
	DueDate     lipgloss.Style
	StatusDone  lipgloss.Style
	StatusOpen  lipgloss.Style
	SelectMark  lipgloss.Style
	Description lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style
}

// NewStyles creates styles based on the given theme
func NewStyles(t Theme) *Styles {
	return &Styles{
		Theme: t,

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		ListDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true).
			Padding(0, 2),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1).
			Bold(true),

		TabInactive: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		NoticeSuccess: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		NoticeError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		NoticeInfo: lipgloss.NewStyle().
			Foreground(t.Info),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		StatusDone: lipgloss.NewStyle().
			Foreground(t.Success),

		StatusOpen: lipgloss.NewStyle().
			Foreground(t.Accent),

		SelectMark: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		Description: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
	}
}
