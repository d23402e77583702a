package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one labeled value shown under a command header. Params are a
// slice, not a map, so they render in the order the command listed them.
type Param struct {
	Key   string
	Value string
}

// Header is a command banner with title, command, and parameters. Commands
// print one at the start so the user can see what is about to run and with
// which registry and server.
type Header struct {
	Title   string  // e.g., "ACCOUNT SETUP"
	Command string  // e.g., "neviweb-cfg setup"
	Params  []Param // e.g., {"Server", "https://neviweb.com"}
	Width   int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// AddParam appends a parameter line
func (h *Header) AddParam(key, value string) *Header {
	h.Params = append(h.Params, Param{Key: key, Value: value})
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	// Title line - uppercase and bold
	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))

	// Command line - muted
	commandLine := HeaderCommandStyle.Render(h.Command)

	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	content := topSection
	if len(h.Params) > 0 {
		dividerWidth := width - 6 // Account for border and padding
		if dividerWidth < 10 {
			dividerWidth = 10
		}
		divider := RenderHorizontalDivider(dividerWidth, "─")

		var paramLines []string
		for _, p := range h.Params {
			keyStyled := HeaderParamKeyStyle.Render(p.Key + ":")
			valueStyled := HeaderParamValueStyle.Render(p.Value)
			paramLines = append(paramLines, keyStyled+" "+valueStyled)
		}
		paramsSection := strings.Join(paramLines, "\n")

		content = lipgloss.JoinVertical(lipgloss.Left, topSection, divider, paramsSection)
	}

	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
