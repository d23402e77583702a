package flow

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nevihome/neviweb/internal/entries"
	"github.com/nevihome/neviweb/internal/form"
	"github.com/nevihome/neviweb/internal/logging"
	"github.com/nevihome/neviweb/internal/neviweb"
)

// Setup flow step keys.
const (
	StepUser     = "user"
	StepNetworks = "networks"
	StepOptions  = "options"
)

// Flow is the step-dispatch interface front-ends drive. Both the setup and
// the options flow implement it, so the TUI and the plain prompts render
// either without knowing which one they hold.
type Flow interface {
	// FirstStep returns the step key the flow starts at.
	FirstStep() string

	// Step renders (nil input) or advances (submitted values) the named
	// step. The error return is reserved for host-programming mistakes
	// such as unknown step keys; user-visible failures travel inside the
	// Result as error codes or an abort reason.
	Step(ctx context.Context, stepID string, input form.Values) (Result, error)
}

// Directory answers identity-key lookups during setup. *entries.Registry
// satisfies it.
type Directory interface {
	HasUniqueID(uniqueID string) bool
}

// Validator checks credentials against the cloud service. *neviweb.Client
// satisfies it.
type Validator interface {
	Validate(ctx context.Context, runner neviweb.Runner, username, password string) (*neviweb.ValidationResult, error)
}

// SetupFlow walks a user through configuring a Neviweb account: credentials,
// optional sub-network selection, polling options. The draft accumulates in
// an EntryBuilder; nothing is persisted until the host receives CreateEntry.
type SetupFlow struct {
	directory Directory
	validator Validator
	runner    neviweb.Runner

	builder EntryBuilder
}

// NewSetupFlow creates a setup flow. The runner may be nil, in which case
// validation calls run inline.
func NewSetupFlow(directory Directory, validator Validator, runner neviweb.Runner) *SetupFlow {
	return &SetupFlow{
		directory: directory,
		validator: validator,
		runner:    runner,
	}
}

// FirstStep returns the setup flow's entry step.
func (f *SetupFlow) FirstStep() string {
	return StepUser
}

// Step dispatches to the named step handler.
func (f *SetupFlow) Step(ctx context.Context, stepID string, input form.Values) (Result, error) {
	logging.LogStep("setup", stepID)

	switch stepID {
	case StepUser:
		return f.stepUser(ctx, input)
	case StepNetworks:
		return f.stepNetworks(input)
	case StepOptions:
		return f.stepOptions(input)
	default:
		return Result{}, fmt.Errorf("flow: unknown setup step %q", stepID)
	}
}

// stepUser collects credentials, enforces account uniqueness and validates
// against the cloud service. The uniqueness check runs before any remote
// call, so a duplicate attempt costs no network traffic.
func (f *SetupFlow) stepUser(ctx context.Context, input form.Values) (Result, error) {
	if input == nil {
		return showForm(StepUser, userSchema(), nil), nil
	}

	username := input.GetString(entries.KeyUsername)
	password := input.GetString(entries.KeyPassword)

	if f.directory.HasUniqueID(entries.UniqueID(username)) {
		return abort(AbortAlreadyConfigured), nil
	}

	validated, err := f.validator.Validate(ctx, f.runner, username, password)
	if err != nil {
		return showForm(StepUser, userSchema(), baseError(errorCode(err))), nil
	}

	f.builder = f.builder.
		WithCredentials(username, password).
		WithDiscovered(validated.Networks)

	// Accounts without sub-networks complete immediately with defaults
	if len(validated.Networks) == 0 {
		f.builder = f.builder.WithOptions(entries.DefaultOptions())
		return createEntry(validated.Title, f.builder.Build()), nil
	}

	return showForm(StepNetworks, networksSchema(validated.Networks), nil), nil
}

// stepNetworks merges the chosen sub-networks into the draft and proceeds
// to the options form. All three slots are optional.
func (f *SetupFlow) stepNetworks(input form.Values) (Result, error) {
	if input == nil {
		return showForm(StepNetworks, networksSchema(f.builder.Discovered()), nil), nil
	}

	f.builder = f.builder.WithSelections(
		input.GetString(entries.KeyNetwork),
		input.GetString(entries.KeyNetwork2),
		input.GetString(entries.KeyNetwork3),
	)

	return showForm(StepOptions, optionsSchema(entries.DefaultOptions()), nil), nil
}

// stepOptions merges the polling options, falling back to defaults for
// fields the user left untouched, and completes the flow.
func (f *SetupFlow) stepOptions(input form.Values) (Result, error) {
	if input == nil {
		return showForm(StepOptions, optionsSchema(entries.DefaultOptions()), nil), nil
	}

	f.builder = f.builder.WithOptions(mergeOptions(input, entries.DefaultOptions()))

	record := f.builder.Build()
	return createEntry(record.Username, record), nil
}

// errorCode maps a validation failure to the code the re-shown form
// renders.
func errorCode(err error) string {
	switch {
	case neviweb.IsAuthError(err):
		return ErrCodeInvalidAuth
	case neviweb.IsConnectError(err):
		return ErrCodeCannotConnect
	default:
		logging.Error("Unexpected validation failure", zap.Error(err))
		return ErrCodeUnknown
	}
}

// mergeOptions builds the options record from submitted values, taking the
// fallback's value for every absent field.
func mergeOptions(input form.Values, fallback entries.Options) entries.Options {
	return entries.Options{
		ScanInterval: input.GetIntOr(entries.KeyScanInterval, fallback.ScanInterval),
		StatInterval: input.GetIntOr(entries.KeyStatInterval, fallback.StatInterval),
		HomekitMode:  input.GetBoolOr(entries.KeyHomekitMode, fallback.HomekitMode),
		IgnoreMiwi:   input.GetBoolOr(entries.KeyIgnoreMiwi, fallback.IgnoreMiwi),
		Notify:       input.GetStringOr(entries.KeyNotify, fallback.Notify),
	}
}

// userSchema describes the credentials form.
func userSchema() form.Schema {
	return form.Schema{
		Name:  StepUser,
		Title: "Sign in to Neviweb",
		Fields: []form.Field{
			{
				Name:        entries.KeyUsername,
				Kind:        form.String,
				Label:       "Username",
				Description: "Your Neviweb account email",
				Required:    true,
			},
			{
				Name:     entries.KeyPassword,
				Kind:     form.String,
				Label:    "Password",
				Required: true,
				Secret:   true,
			},
		},
	}
}

// networksSchema describes the sub-network selection form. Every slot
// offers the discovered networks plus an empty choice.
func networksSchema(discovered []string) form.Schema {
	options := make([]string, 0, len(discovered)+1)
	options = append(options, "")
	options = append(options, discovered...)

	return form.Schema{
		Name:  StepNetworks,
		Title: "Choose networks",
		Fields: []form.Field{
			{
				Name:        entries.KeyNetwork,
				Kind:        form.Select,
				Label:       "First network",
				Description: "Sub-network to import devices from",
				Options:     options,
			},
			{
				Name:    entries.KeyNetwork2,
				Kind:    form.Select,
				Label:   "Second network",
				Options: options,
			},
			{
				Name:    entries.KeyNetwork3,
				Kind:    form.Select,
				Label:   "Third network",
				Options: options,
			},
		},
	}
}

// optionsSchema describes the polling options form, pre-filled from the
// given current values.
func optionsSchema(current entries.Options) form.Schema {
	return form.Schema{
		Name:  StepOptions,
		Title: "Polling options",
		Fields: []form.Field{
			{
				Name:        entries.KeyScanInterval,
				Kind:        form.Int,
				Label:       "Scan interval",
				Description: "Seconds between device polls",
				Min:         entries.MinScanInterval,
				Max:         entries.MaxScanInterval,
				Default:     strconv.Itoa(current.ScanInterval),
			},
			{
				Name:        entries.KeyStatInterval,
				Kind:        form.Int,
				Label:       "Statistics interval",
				Description: "Seconds between energy statistics polls",
				Min:         entries.MinStatInterval,
				Max:         entries.MaxStatInterval,
				Default:     strconv.Itoa(current.StatInterval),
			},
			{
				Name:        entries.KeyHomekitMode,
				Kind:        form.Bool,
				Label:       "HomeKit mode",
				Description: "Expose climate devices in a HomeKit-compatible way",
				Default:     strconv.FormatBool(current.HomekitMode),
			},
			{
				Name:        entries.KeyIgnoreMiwi,
				Kind:        form.Bool,
				Label:       "Ignore MiWi devices",
				Description: "Skip devices paired through a GT130 hub",
				Default:     strconv.FormatBool(current.IgnoreMiwi),
			},
			{
				Name:    entries.KeyNotify,
				Kind:    form.Select,
				Label:   "Notification mode",
				Options: entries.NotifyModes,
				Default: current.Notify,
			},
		},
	}
}
