package ui

import (
	"context"
	"errors"

	"github.com/nevihome/neviweb/internal/flow"
	"github.com/nevihome/neviweb/internal/form"
)

// RunFlow drives a flow to completion in plain mode. Each ShowForm result is
// prompted with pr and validated locally until the submission passes; the
// validated values go back into the same step. The first non-form result is
// returned for the command to act on.
func RunFlow(ctx context.Context, f flow.Flow, pr *Prompter) (flow.Result, error) {
	stepID := f.FirstStep()
	var input form.Values

	for {
		result, err := f.Step(ctx, stepID, input)
		if err != nil {
			return flow.Result{}, err
		}
		if result.Type != flow.ShowForm {
			return result, nil
		}

		if code, ok := result.Errors[flow.BaseError]; ok {
			pr.PrintError(flow.ErrorText(code))
		}
		pr.PrintTitle(result.Schema.Title)

		input, err = promptValid(pr, result.Schema)
		if err != nil {
			return flow.Result{}, err
		}
		stepID = result.StepID
	}
}

// promptValid prompts for the schema until the submission validates.
func promptValid(pr *Prompter, schema form.Schema) (form.Values, error) {
	for {
		raw, err := pr.PromptSchema(schema)
		if err != nil {
			return nil, err
		}

		values, err := schema.Validate(raw)
		if err == nil {
			return values, nil
		}

		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		pr.PrintFieldErrors(schema, verr.Fields)
	}
}
