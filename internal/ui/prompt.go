package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/nevihome/neviweb/internal/form"
)

// Prompter asks for form fields one line at a time. It is the plain-mode
// counterpart of the TUI wizard: same schemas, same validation, but driven
// by ordinary reads so it works over pipes and in CI.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// passwordFd is the file descriptor used for masked password reads.
	// Negative when input is not a terminal; secrets are then read as
	// plain lines.
	passwordFd int
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
// Nil arguments default to os.Stdin and os.Stdout. Password masking is only
// enabled when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Prompter{
		in:         bufio.NewReader(in),
		out:        out,
		passwordFd: fd,
	}
}

// PromptSchema asks for every field in the schema and returns the raw
// answers keyed by field name. Blank answers are left out so the flow's
// defaulting rules apply. The caller validates the result against the
// schema and re-prompts on failure.
func (p *Prompter) PromptSchema(schema form.Schema) (map[string]string, error) {
	raw := make(map[string]string, len(schema.Fields))

	for _, field := range schema.Fields {
		answer, err := p.promptField(field)
		if err != nil {
			return nil, err
		}
		if answer != "" {
			raw[field.Name] = answer
		}
	}

	return raw, nil
}

// PrintTitle prints a form heading.
func (p *Prompter) PrintTitle(title string) {
	if title == "" {
		return
	}
	_, _ = fmt.Fprintln(p.out)
	_, _ = fmt.Fprintln(p.out, StepTitleStyle.Render(title))
}

// PrintError prints a form-wide error message.
func (p *Prompter) PrintError(text string) {
	_, _ = fmt.Fprintln(p.out)
	_, _ = fmt.Fprintln(p.out, ErrorMessageStyle.Render("  "+FailureMarker+" "+text))
}

// PrintFieldErrors prints one line per failed field, resolving codes into
// sentences using the field's own bounds and options.
func (p *Prompter) PrintFieldErrors(schema form.Schema, fields map[string]string) {
	_, _ = fmt.Fprintln(p.out)
	for _, field := range schema.Fields {
		code, ok := fields[field.Name]
		if !ok {
			continue
		}
		msg := fieldErrorText(field, code)
		_, _ = fmt.Fprintln(p.out, FieldErrorStyle.Render("  "+FailureMarker+" "+field.DisplayLabel()+": "+msg))
	}
}

// promptField dispatches on the field kind. Every branch returns the raw
// text to submit; coercion stays in form.Schema.Validate.
func (p *Prompter) promptField(field form.Field) (string, error) {
	if field.Description != "" {
		_, _ = fmt.Fprintln(p.out)
		_, _ = fmt.Fprintln(p.out, PromptHintStyle.Render("  "+field.Description))
	}

	switch field.Kind {
	case form.Select:
		return p.promptSelect(field)
	case form.Bool:
		return p.promptBool(field)
	default:
		return p.promptLine(field)
	}
}

// promptLine handles String and Int fields with a single prompt line.
func (p *Prompter) promptLine(field form.Field) (string, error) {
	hint := ""
	if field.Bounded() {
		hint = fmt.Sprintf(" (%d-%d)", field.Min, field.Max)
	}
	if field.Default != "" {
		hint += " [" + field.Default + "]"
	}

	p.printPrompt(field.DisplayLabel() + hint)

	if field.Secret && p.passwordFd >= 0 {
		secret, err := term.ReadPassword(p.passwordFd)
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	return p.readLine()
}

// promptBool asks a yes/no question. The answer is normalized to the bool
// literals the schema accepts; anything unrecognized passes through so
// validation can flag it.
func (p *Prompter) promptBool(field form.Field) (string, error) {
	choices := "y/N"
	if field.Default == "true" {
		choices = "Y/n"
	}
	p.printPrompt(fmt.Sprintf("%s [%s]", field.DisplayLabel(), choices))

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return "true", nil
	case "n", "no":
		return "false", nil
	default:
		return answer, nil
	}
}

// promptSelect lists the options numbered and accepts either a number or
// the option text. Empty options render as "(none)".
func (p *Prompter) promptSelect(field form.Field) (string, error) {
	_, _ = fmt.Fprintln(p.out, PromptLabelStyle.Render("  "+field.DisplayLabel()+":"))
	for i, opt := range field.Options {
		label := opt
		if label == "" {
			label = "(none)"
		}
		marker := " "
		if opt == field.Default {
			marker = PromptMarker
		}
		_, _ = fmt.Fprintf(p.out, "  %s %2d. %s\n", PromptHintStyle.Render(marker), i+1, label)
	}

	hint := ""
	if field.Default != "" {
		hint = " [" + field.Default + "]"
	}
	p.printPrompt("Choice" + hint)

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}

	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(field.Options) {
		return field.Options[n-1], nil
	}
	return answer, nil
}

func (p *Prompter) printPrompt(label string) {
	_, _ = fmt.Fprint(p.out, PromptLabelStyle.Render("  "+PromptMarker+" "+label+": "))
}

// readLine reads one line, tolerating a final unterminated line at EOF.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// fieldErrorText resolves a validation code into a sentence for the field.
func fieldErrorText(field form.Field, code string) string {
	switch code {
	case form.CodeRequired:
		return "this field is required"
	case form.CodeNotANumber:
		return "enter a whole number"
	case form.CodeOutOfRange:
		return fmt.Sprintf("enter a number between %d and %d", field.Min, field.Max)
	case form.CodeNotABool:
		return "answer yes or no"
	case form.CodeInvalidOption:
		return "choose one of the listed options"
	default:
		return code
	}
}
