// Package flow implements the wizard state machines behind the Neviweb
// setup tool: the account setup flow and the options-editing flow.
//
// A flow is a set of named steps driven through one dispatch method:
//
//	Step(ctx, stepID string, input form.Values) (Result, error)
//
// Calling a step with nil input renders it: the Result carries the form
// schema the front-end should display. Calling it with submitted values
// advances the flow. The Result then either shows the next form, re-shows
// the same form with error codes, finishes with a new entry or an options
// update, or aborts.
//
// Front-ends (the Bubble Tea TUI, the plain-terminal prompts) stay dumb:
// everything the wizard decides lives here, so both front-ends behave
// identically.
//
// # Setup Flow
//
// Steps run user -> networks -> options. The user step checks that the
// account is not already configured (identity is the lower-cased username)
// before any network traffic, then validates the credentials against the
// cloud service. Accounts without discovered sub-networks skip the networks
// and options steps and complete immediately with default options.
//
// # Options Flow
//
// A single "init" step pre-filled from the persisted entry. Submitting
// replaces the entry's options wholesale; fields left untouched keep their
// pre-fill values. No remote validation runs.
package flow
