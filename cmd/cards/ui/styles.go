// Package ui provides the visual styling and pure renderers for the card
// gallery TUI. Uses a stone/amber palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#fafaf9") // stone-50
	LightForeground = lipgloss.Color("#1c1917") // stone-900
	LightPrimary    = lipgloss.Color("#92400e") // amber-800
	LightAccent     = lipgloss.Color("#d97706") // amber-600
	LightSecondary  = lipgloss.Color("#e7e5e4") // stone-200
	LightMuted      = lipgloss.Color("#78716c") // stone-500
	LightBorder     = lipgloss.Color("#d6d3d1") // stone-300
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#18181b") // zinc-900
	DarkForeground = lipgloss.Color("#f5f5f4") // stone-100
	DarkPrimary    = lipgloss.Color("#fcd34d") // amber-300
	DarkAccent     = lipgloss.Color("#f59e0b") // amber-500
	DarkSecondary  = lipgloss.Color("#292524") // stone-800
	DarkMuted      = lipgloss.Color("#a8a29e") // stone-400
	DarkBorder     = lipgloss.Color("#44403c") // stone-700
	DarkCard       = lipgloss.Color("#1c1917") // stone-900

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#f87171") // red-400
	Success     = lipgloss.Color("#84cc16") // lime-500
	Warning     = lipgloss.Color("#fbbf24") // amber-400
	Info        = lipgloss.Color("#38bdf8") // sky-400
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name. "auto" and "" detect.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme picks a theme from the terminal environment.
// The gallery defaults to dark, like the web original.
func DetectTheme() Theme {
	switch os.Getenv("CARDS_DARK_MODE") {
	case "1", "true":
		return DarkTheme()
	case "0", "false":
		return LightTheme()
	}

	// COLORFGBG is "foreground;background"; 7 and 15 are light backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && (bg == 7 || bg == 15) {
			return LightTheme()
		}
	}
	return DarkTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Button  lipgloss.Style
	Modal   lipgloss.Style
	Notice  lipgloss.Style

	// Card tiles
	Tile            lipgloss.Style
	TileSelected    lipgloss.Style
	TileName        lipgloss.Style
	TileDesignation lipgloss.Style
	TileCompany     lipgloss.Style
	TileLink        lipgloss.Style
	TileImage       lipgloss.Style

	// Page selector
	PageButton   lipgloss.Style
	PageCurrent  lipgloss.Style
	PageDisabled lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	tile := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	pageButton := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(theme.Foreground).
		Background(theme.Secondary)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Button: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 2),

		Notice: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2).
			Bold(true),

		Tile: tile,

		TileSelected: tile.
			BorderForeground(theme.Accent).
			BorderStyle(lipgloss.ThickBorder()),

		TileName: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		TileDesignation: lipgloss.NewStyle().
			Foreground(theme.Accent),

		TileCompany: lipgloss.NewStyle().
			Foreground(theme.Muted),

		TileLink: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		TileImage: lipgloss.NewStyle().
			Foreground(Info).
			Italic(true),

		PageButton: pageButton,

		PageCurrent: pageButton.
			Foreground(theme.Background).
			Background(theme.Accent).
			Bold(true),

		PageDisabled: pageButton.
			Foreground(theme.Muted).
			Faint(true),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
