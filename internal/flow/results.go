package flow

import (
	"github.com/nevihome/neviweb/internal/entries"
	"github.com/nevihome/neviweb/internal/form"
)

// Error codes front-ends render when a step re-shows its form. They live in
// the Errors map under the "base" slot when they concern the whole form.
const (
	ErrCodeCannotConnect = "cannot_connect"
	ErrCodeInvalidAuth   = "invalid_auth"
	ErrCodeUnknown       = "unknown"
)

// BaseError is the Errors slot for failures not tied to a single field.
const BaseError = "base"

// Abort reasons.
const (
	AbortAlreadyConfigured = "already_configured"
)

// ErrorText turns an error code into the sentence front-ends print. Codes
// without a message come back verbatim so nothing is silently swallowed.
func ErrorText(code string) string {
	switch code {
	case ErrCodeCannotConnect:
		return "Could not reach Neviweb. Check your connection and try again."
	case ErrCodeInvalidAuth:
		return "Invalid username or password."
	case ErrCodeUnknown:
		return "Something unexpected went wrong. Run with NEVIWEB_LOG_LEVEL=debug for details."
	default:
		return code
	}
}

// AbortText turns an abort reason into the sentence front-ends print.
func AbortText(reason string) string {
	switch reason {
	case AbortAlreadyConfigured:
		return "This account is already configured."
	default:
		return reason
	}
}

// ResultType discriminates what a step handed back.
type ResultType int

const (
	// ShowForm asks the front-end to render Schema and submit it back to
	// the same step.
	ShowForm ResultType = iota

	// CreateEntry finishes the setup flow; the host persists the record.
	CreateEntry

	// UpdateEntry finishes the options flow; the host replaces the
	// entry's options.
	UpdateEntry

	// Abort ends the flow without writing anything.
	Abort
)

func (t ResultType) String() string {
	switch t {
	case ShowForm:
		return "show_form"
	case CreateEntry:
		return "create_entry"
	case UpdateEntry:
		return "update_entry"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Result is a step's answer to the front-end.
type Result struct {
	Type ResultType

	// StepID names the step a ShowForm result belongs to.
	StepID string

	// Schema is the form to render when Type is ShowForm.
	Schema form.Schema

	// Errors maps error slots to error codes for a re-shown form. The
	// BaseError slot holds form-wide codes; field names hold field codes.
	Errors map[string]string

	// Title and Record carry the completed configuration for CreateEntry.
	Title  string
	Record entries.Record

	// UniqueID and Options carry the replacement options for UpdateEntry.
	UniqueID string
	Options  entries.Options

	// Reason explains an Abort.
	Reason string
}

func showForm(stepID string, schema form.Schema, errs map[string]string) Result {
	return Result{
		Type:   ShowForm,
		StepID: stepID,
		Schema: schema,
		Errors: errs,
	}
}

func baseError(code string) map[string]string {
	return map[string]string{BaseError: code}
}

func createEntry(title string, record entries.Record) Result {
	return Result{
		Type:   CreateEntry,
		Title:  title,
		Record: record,
	}
}

func updateEntry(uniqueID string, options entries.Options) Result {
	return Result{
		Type:     UpdateEntry,
		UniqueID: uniqueID,
		Options:  options,
	}
}

func abort(reason string) Result {
	return Result{
		Type:   Abort,
		Reason: reason,
	}
}
