package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nevihome/neviweb/internal/version"
)

// Application branding constants
const (
	AppName       = "NEVIWEB SETUP WIZARD"
	GitHubURL     = "github.com/nevihome/neviweb"
	GitHubFullURL = "https://github.com/nevihome/neviweb"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72 // Minimum supported terminal width
	MaxFormWidth     = 64 // Maximum width for the embedded form
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#2AA9E0") // Blue
	HighlightColor = lipgloss.Color("#43BF6D") // Green
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#2AA9E0") // Blue (same as primary)
)

// Common styles
var (
	// Title style for form headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	// Error banner style shown above a re-rendered form
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	// Spinner style for busy phases
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Busy label style next to the spinner
	BusyTextStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderError renders an error banner
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// HuhTheme returns the huh form theme matching the wizard palette
func HuhTheme() *huh.Theme {
	t := huh.ThemeCharm()
	t.Focused.Title = t.Focused.Title.Foreground(PrimaryColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(PrimaryColor)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(PrimaryColor)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(HighlightColor)
	return t
}

// BuildHeaderContent creates header content with app name and GitHub URL
// Returns a string formatted for use in the application container
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps screen content in the application frame:
// a bordered panel filling the terminal, an application header on top, and a
// context-sensitive footer pinned below the content.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	header := BuildHeaderContent()
	footer := BuildFooterContent(footerText)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth - 4). // Leave room for outer border
		Padding(0, 1)

	styledHeader := headerStyle.Render(header)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth - 4).
		Padding(0, 1)

	styledFooter := footerStyle.Render(footer)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4).
		Padding(0, 1)

	styledContent := contentStyle.Render(content)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styledHeader,
		styledContent,
		styledFooter,
	)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top)

	bordered := borderStyle.Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}
