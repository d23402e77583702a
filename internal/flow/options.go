package flow

import (
	"context"
	"fmt"

	"github.com/nevihome/neviweb/internal/entries"
	"github.com/nevihome/neviweb/internal/form"
	"github.com/nevihome/neviweb/internal/logging"
)

// StepInit is the options flow's only step key.
const StepInit = "init"

// OptionsFlow edits the polling options of a persisted entry. The form is
// pre-filled with the entry's effective options (overlay over record);
// submitting replaces the overlay wholesale. No remote validation runs.
type OptionsFlow struct {
	entry   *entries.Entry
	current entries.Options
}

// NewOptionsFlow creates an options flow for the given entry.
func NewOptionsFlow(entry *entries.Entry) *OptionsFlow {
	return &OptionsFlow{
		entry:   entry,
		current: entry.EffectiveOptions(),
	}
}

// FirstStep returns the options flow's entry step.
func (f *OptionsFlow) FirstStep() string {
	return StepInit
}

// Step renders or submits the single options form.
func (f *OptionsFlow) Step(ctx context.Context, stepID string, input form.Values) (Result, error) {
	logging.LogStep("options", stepID)

	if stepID != StepInit {
		return Result{}, fmt.Errorf("flow: unknown options step %q", stepID)
	}

	if input == nil {
		schema := optionsSchema(f.current)
		schema.Name = StepInit
		return showForm(StepInit, schema, nil), nil
	}

	// Absent fields keep their pre-fill values, mirroring a form the user
	// submitted without touching those fields.
	return updateEntry(f.entry.UniqueID, mergeOptions(input, f.current)), nil
}
