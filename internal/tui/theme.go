package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

// Semantic aliases
const (
	colorAccent    = colorPink
	colorBrand     = colorPink
	colorFocus     = colorLavender
	colorSuccess   = colorGreen
	colorError     = colorRed
	colorMatch     = colorYellow
	colorFirstHit  = colorPeach
	colorClicked   = colorBlue
	colorGridLines = colorSurface1
)

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 1)

	headerAppStyle  = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	headerFileStyle = lipgloss.NewStyle().Foreground(colorText)
	headerMetaStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 1)

	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	searchPromptStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	searchIdleStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)

	// Grid
	gutterStyle       = lipgloss.NewStyle().Foreground(colorOverlay1)
	columnHeaderStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Bold(true)
	separatorStyle    = lipgloss.NewStyle().Foreground(colorGridLines)
	cellStyle         = lipgloss.NewStyle().Foreground(colorText)
	highlightStyle    = lipgloss.NewStyle().Foreground(colorBase).Background(colorMatch)
	firstMatchStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorFirstHit).Bold(true)
	clickedStyle      = lipgloss.NewStyle().Foreground(colorClicked).Underline(true)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	// Toasts
	toastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSuccess).
				Foreground(colorSuccess).
				Padding(0, 1)
	toastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Foreground(colorError).
			Padding(0, 1)
)
