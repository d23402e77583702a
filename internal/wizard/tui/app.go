package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nevihome/neviweb/internal/flow"
	"github.com/nevihome/neviweb/internal/form"
)

// phase is the wizard's display state
type phase int

const (
	phaseBusy phase = iota // waiting on a flow step, spinner shown
	phaseForm              // huh form shown, collecting input
	phaseDone              // terminal result reached, about to quit
)

// stepMsg carries the outcome of an async flow step dispatch
type stepMsg struct {
	result flow.Result
	err    error
}

// binding ties one schema field to the variable its huh field writes into
type binding struct {
	field form.Field
	text  *string // String, Int, and Select fields
	flag  *bool   // Bool fields
}

// Model is the top-level wizard model. It walks a flow step by step,
// rendering each ShowForm result as a huh form and dispatching submissions
// back to the flow from a background command so the UI keeps animating
// during network calls.
type Model struct {
	flow flow.Flow
	ctx  context.Context

	phase    phase
	busyText string

	// Current form state
	stepID    string
	schema    form.Schema
	form      *huh.Form
	bindings  []binding
	baseError string

	Spinner spinner.Model
	Width   int
	Height  int

	// Terminal state, read by Run after the program exits
	result    flow.Result
	finished  bool
	cancelled bool
	err       error
}

// NewModel creates a wizard model for the given flow
func NewModel(ctx context.Context, f flow.Flow) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		flow:     f,
		ctx:      ctx,
		phase:    phaseBusy,
		busyText: "Loading...",
		stepID:   f.FirstStep(),
		Spinner:  s,
	}
}

// Init dispatches the first step to get the initial form
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dispatchStep(nil), m.Spinner.Tick)
}

// dispatchStep runs a flow step off the UI goroutine
func (m Model) dispatchStep(input form.Values) tea.Cmd {
	f, ctx, stepID := m.flow, m.ctx, m.stepID
	return func() tea.Msg {
		result, err := f.Step(ctx, stepID, input)
		return stepMsg{result: result, err: err}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if m.form != nil {
			m.form = m.form.WithWidth(formWidth(m.Width))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.phase == phaseBusy {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case stepMsg:
		return m.handleStep(msg)
	}

	if m.phase == phaseForm && m.form != nil {
		updated, cmd := m.form.Update(msg)
		m.form = updated.(*huh.Form)

		switch m.form.State {
		case huh.StateCompleted:
			return m.submit()
		case huh.StateAborted:
			m.cancelled = true
			return m, tea.Quit
		}
		return m, cmd
	}

	return m, nil
}

// handleStep applies a flow step outcome: either render the next form or
// quit with the terminal result.
func (m Model) handleStep(msg stepMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.phase = phaseDone
		return m, tea.Quit
	}

	result := msg.result
	if result.Type != flow.ShowForm {
		m.result = result
		m.finished = true
		m.phase = phaseDone
		return m, tea.Quit
	}

	m.stepID = result.StepID
	m.schema = result.Schema
	m.baseError = ""
	if code, ok := result.Errors[flow.BaseError]; ok {
		m.baseError = flow.ErrorText(code)
	}

	m.buildForm()
	m.phase = phaseForm
	return m, m.form.Init()
}

// submit validates the completed form against the schema and dispatches the
// values to the flow.
func (m Model) submit() (tea.Model, tea.Cmd) {
	values, err := m.schema.Validate(m.rawValues())
	if err != nil {
		// The huh validators mirror the schema rules, so this only
		// triggers if they fall out of sync. Re-render with the message.
		m.baseError = err.Error()
		m.buildForm()
		m.phase = phaseForm
		return m, m.form.Init()
	}

	m.phase = phaseBusy
	m.busyText = busyText(m.stepID)
	return m, tea.Batch(m.dispatchStep(values), m.Spinner.Tick)
}

// buildForm creates a huh form for the current schema, binding each field
// to a destination variable collected later by rawValues.
func (m *Model) buildForm() {
	m.bindings = make([]binding, 0, len(m.schema.Fields))
	fields := make([]huh.Field, 0, len(m.schema.Fields))

	for _, f := range m.schema.Fields {
		switch f.Kind {
		case form.Bool:
			flag := new(bool)
			*flag = f.Default == "true"
			m.bindings = append(m.bindings, binding{field: f, flag: flag})

			fields = append(fields, huh.NewConfirm().
				Title(f.DisplayLabel()).
				Description(f.Description).
				Affirmative("Yes").
				Negative("No").
				Value(flag))

		case form.Select:
			text := new(string)
			*text = f.Default
			m.bindings = append(m.bindings, binding{field: f, text: text})

			options := make([]huh.Option[string], 0, len(f.Options))
			for _, opt := range f.Options {
				label := opt
				if label == "" {
					label = "(none)"
				}
				options = append(options, huh.NewOption(label, opt))
			}

			fields = append(fields, huh.NewSelect[string]().
				Title(f.DisplayLabel()).
				Description(f.Description).
				Options(options...).
				Value(text))

		default:
			text := new(string)
			*text = f.Default
			m.bindings = append(m.bindings, binding{field: f, text: text})

			input := huh.NewInput().
				Title(f.DisplayLabel()).
				Description(f.Description).
				Value(text)
			if f.Secret {
				input = input.EchoMode(huh.EchoModePassword)
			}
			if validate := fieldValidator(f); validate != nil {
				input = input.Validate(validate)
			}
			fields = append(fields, input)
		}
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(HuhTheme()).
		WithShowHelp(false)
	if m.Width > 0 {
		m.form = m.form.WithWidth(formWidth(m.Width))
	}
}

// rawValues collects the bound answers into the raw submission map. Blank
// text answers are left out so the flow's defaulting rules apply; bool
// answers are always submitted because false is an explicit choice.
func (m Model) rawValues() map[string]string {
	raw := make(map[string]string, len(m.bindings))
	for _, b := range m.bindings {
		switch {
		case b.flag != nil:
			raw[b.field.Name] = strconv.FormatBool(*b.flag)
		case b.text != nil && *b.text != "":
			raw[b.field.Name] = *b.text
		}
	}
	return raw
}

// fieldValidator returns the inline huh validator mirroring the schema's
// rules for the field, or nil when submission-time validation suffices.
func fieldValidator(f form.Field) func(string) error {
	switch f.Kind {
	case form.Int:
		return func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				if f.Required {
					return errors.New("required")
				}
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.New("enter a whole number")
			}
			if f.Bounded() && (n < f.Min || n > f.Max) {
				return fmt.Errorf("must be between %d and %d", f.Min, f.Max)
			}
			return nil
		}

	case form.String:
		if !f.Required {
			return nil
		}
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("required")
			}
			return nil
		}
	}
	return nil
}

// busyText names what the wizard is waiting on for a given step
func busyText(stepID string) string {
	if stepID == flow.StepUser {
		return "Signing in to Neviweb..."
	}
	return "Working..."
}

// formWidth caps the embedded form's width for readability
func formWidth(terminalWidth int) int {
	width := terminalWidth - 8
	if width > MaxFormWidth {
		width = MaxFormWidth
	}
	if width < 20 {
		width = 20
	}
	return width
}

// View renders the current phase
func (m Model) View() string {
	if m.phase == phaseDone {
		return ""
	}

	var b strings.Builder

	switch m.phase {
	case phaseBusy:
		b.WriteString("\n  ")
		b.WriteString(m.Spinner.View())
		b.WriteString(" ")
		b.WriteString(BusyTextStyle.Render(m.busyText))
		b.WriteString("\n")

	case phaseForm:
		if m.schema.Title != "" {
			b.WriteString(RenderTitle(m.schema.Title))
			b.WriteString("\n")
		}
		if m.baseError != "" {
			b.WriteString(RenderError(m.baseError))
			b.WriteString("\n\n")
		}
		if m.form != nil {
			b.WriteString(m.form.View())
		}
	}

	helpText := "enter confirm • tab next field • ctrl+c quit"
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}

// Result returns the flow's terminal result and whether one was reached
func (m Model) Result() (flow.Result, bool) {
	return m.result, m.finished
}

// Cancelled reports whether the user quit before finishing
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Err returns the flow error that ended the wizard, if any
func (m Model) Err() error {
	return m.err
}

// Run starts the wizard over the given flow and blocks until it finishes.
// The boolean is false when the user cancelled before reaching a terminal
// result.
func Run(ctx context.Context, f flow.Flow) (flow.Result, bool, error) {
	program := tea.NewProgram(NewModel(ctx, f), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return flow.Result{}, false, err
	}

	m := final.(Model)
	if m.err != nil {
		return flow.Result{}, false, m.err
	}
	if !m.finished {
		return flow.Result{}, false, nil
	}
	return m.result, true, nil
}
