package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prints a yes/no prompt and reads one line from in. Only "y" and
// "yes" (any case) count as confirmation; everything else, including a read
// error, declines.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	promptStyle := lipgloss.NewStyle().Foreground(TextColor)
	_, _ = fmt.Fprint(out, promptStyle.Render(prompt+" [y/N]: "))

	line, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ConfirmRemoval displays a warning box describing the account about to be
// removed and asks for confirmation. Returns true if the user confirmed.
func ConfirmRemoval(in io.Reader, out io.Writer, title string, details []Detail) bool {
	width := GetTerminalWidth()

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title))
	lines = append(lines, "")
	lines = append(lines, titleLine)
	lines = append(lines, "")

	for _, d := range details {
		keyStyled := ResultKeyStyle.Render(fmt.Sprintf("   %s:", d.Key))
		valueStyled := ResultValueStyle.Render(d.Value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	lines = append(lines, "")

	noteStyle := lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true).
		PaddingLeft(3)
	lines = append(lines, noteStyle.Render("The stored credentials are deleted and cannot be recovered."))
	lines = append(lines, "")

	box := WarningBoxStyle(width).Render(strings.Join(lines, "\n"))
	_, _ = fmt.Fprintln(out, box)
	_, _ = fmt.Fprintln(out)

	if Confirm(in, out, "Remove this account?") {
		return true
	}

	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	_, _ = fmt.Fprintln(out, cancelStyle.Render("  Operation cancelled."))
	_, _ = fmt.Fprintln(out)
	return false
}
