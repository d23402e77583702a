package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/nevihome/neviweb/internal/entries"
	"github.com/nevihome/neviweb/internal/form"
	"github.com/nevihome/neviweb/internal/neviweb"
)

// fakeValidator stands in for the cloud client and counts invocations.
type fakeValidator struct {
	result *neviweb.ValidationResult
	err    error
	calls  int
}

func (v *fakeValidator) Validate(ctx context.Context, runner neviweb.Runner, username, password string) (*neviweb.ValidationResult, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.result, nil
}

func newTestFlow(validator *fakeValidator) (*SetupFlow, *entries.Registry) {
	registry := &entries.Registry{}
	return NewSetupFlow(registry, validator, nil), registry
}

func userInput(username, password string) form.Values {
	return form.Values{
		entries.KeyUsername: username,
		entries.KeyPassword: password,
	}
}

func TestSetupFlow_FirstStep(t *testing.T) {
	flow, _ := newTestFlow(&fakeValidator{})

	if got := flow.FirstStep(); got != StepUser {
		t.Errorf("FirstStep() = %s, want %s", got, StepUser)
	}
}

func TestSetupFlow_RendersUserForm(t *testing.T) {
	flow, _ := newTestFlow(&fakeValidator{})

	result, err := flow.Step(context.Background(), StepUser, nil)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if result.Type != ShowForm {
		t.Fatalf("Type = %s, want show_form", result.Type)
	}
	if result.StepID != StepUser {
		t.Errorf("StepID = %s, want user", result.StepID)
	}

	username, ok := result.Schema.Field(entries.KeyUsername)
	if !ok || !username.Required {
		t.Error("schema should require a username")
	}

	password, ok := result.Schema.Field(entries.KeyPassword)
	if !ok || !password.Required || !password.Secret {
		t.Error("schema should require a secret password")
	}
}

func TestSetupFlow_HappyPath(t *testing.T) {
	validator := &fakeValidator{result: &neviweb.ValidationResult{
		Title:    "jane@example.com",
		Networks: []string{"Home", "Cottage"},
	}}
	flow, _ := newTestFlow(validator)
	ctx := context.Background()

	// Credentials step advances to network selection
	result, err := flow.Step(ctx, StepUser, userInput("jane@example.com", "hunter2"))
	if err != nil {
		t.Fatalf("Step(user) error = %v", err)
	}
	if result.Type != ShowForm || result.StepID != StepNetworks {
		t.Fatalf("after user step: type = %s, step = %s, want show_form/networks", result.Type, result.StepID)
	}

	// Every slot offers the empty choice plus the discovered networks
	network, ok := result.Schema.Field(entries.KeyNetwork)
	if !ok {
		t.Fatal("networks schema missing network field")
	}
	wantOptions := []string{"", "Home", "Cottage"}
	if len(network.Options) != len(wantOptions) {
		t.Fatalf("network options = %v, want %v", network.Options, wantOptions)
	}
	for i, want := range wantOptions {
		if network.Options[i] != want {
			t.Errorf("network options[%d] = %s, want %s", i, network.Options[i], want)
		}
	}
	if _, ok := result.Schema.Field(entries.KeyNetwork2); !ok {
		t.Error("networks schema missing network2 field")
	}
	if _, ok := result.Schema.Field(entries.KeyNetwork3); !ok {
		t.Error("networks schema missing network3 field")
	}

	// Network selection advances to the options form
	result, err = flow.Step(ctx, StepNetworks, form.Values{
		entries.KeyNetwork:  "Home",
		entries.KeyNetwork3: "Cottage",
	})
	if err != nil {
		t.Fatalf("Step(networks) error = %v", err)
	}
	if result.Type != ShowForm || result.StepID != StepOptions {
		t.Fatalf("after networks step: type = %s, step = %s, want show_form/options", result.Type, result.StepID)
	}

	// Submitting options completes the flow
	result, err = flow.Step(ctx, StepOptions, form.Values{
		entries.KeyScanInterval: 450,
		entries.KeyStatInterval: 900,
		entries.KeyHomekitMode:  true,
		entries.KeyNotify:       "logging",
	})
	if err != nil {
		t.Fatalf("Step(options) error = %v", err)
	}
	if result.Type != CreateEntry {
		t.Fatalf("Type = %s, want create_entry", result.Type)
	}

	if result.Title != "jane@example.com" {
		t.Errorf("Title = %s, want jane@example.com", result.Title)
	}

	record := result.Record
	if record.Username != "jane@example.com" || record.Password != "hunter2" {
		t.Errorf("credentials = %s/%s, want jane@example.com/hunter2", record.Username, record.Password)
	}
	if record.Network != "Home" || record.Network2 != "" || record.Network3 != "Cottage" {
		t.Errorf("networks = %q/%q/%q, want Home//Cottage", record.Network, record.Network2, record.Network3)
	}
	if record.ScanInterval != 450 || record.StatInterval != 900 {
		t.Errorf("intervals = %d/%d, want 450/900", record.ScanInterval, record.StatInterval)
	}
	if !record.HomekitMode || record.IgnoreMiwi {
		t.Errorf("flags = %v/%v, want true/false", record.HomekitMode, record.IgnoreMiwi)
	}
	if record.Notify != "logging" {
		t.Errorf("notify = %s, want logging", record.Notify)
	}
}

func TestSetupFlow_UntouchedOptionsGetDefaults(t *testing.T) {
	validator := &fakeValidator{result: &neviweb.ValidationResult{
		Title:    "jane@example.com",
		Networks: []string{"Home"},
	}}
	flow, _ := newTestFlow(validator)
	ctx := context.Background()

	if _, err := flow.Step(ctx, StepUser, userInput("jane@example.com", "hunter2")); err != nil {
		t.Fatalf("Step(user) error = %v", err)
	}
	if _, err := flow.Step(ctx, StepNetworks, form.Values{}); err != nil {
		t.Fatalf("Step(networks) error = %v", err)
	}

	result, err := flow.Step(ctx, StepOptions, form.Values{})
	if err != nil {
		t.Fatalf("Step(options) error = %v", err)
	}

	record := result.Record
	if record.ScanInterval != 600 {
		t.Errorf("ScanInterval = %d, want 600", record.ScanInterval)
	}
	if record.StatInterval != 1800 {
		t.Errorf("StatInterval = %d, want 1800", record.StatInterval)
	}
	if record.HomekitMode || record.IgnoreMiwi {
		t.Error("flags should default to false")
	}
	if record.Notify != "both" {
		t.Errorf("Notify = %s, want both", record.Notify)
	}
}

func TestSetupFlow_NoNetworksCompletesImmediately(t *testing.T) {
	validator := &fakeValidator{result: &neviweb.ValidationResult{
		Title:    "jane@example.com",
		Networks: nil,
	}}
	flow, _ := newTestFlow(validator)

	result, err := flow.Step(context.Background(), StepUser, userInput("jane@example.com", "hunter2"))
	if err != nil {
		t.Fatalf("Step(user) error = %v", err)
	}

	if result.Type != CreateEntry {
		t.Fatalf("Type = %s, want create_entry", result.Type)
	}

	record := result.Record
	if record.Network != "" || record.Network2 != "" || record.Network3 != "" {
		t.Error("record should have no network selections")
	}
	if record.ScanInterval != 600 || record.StatInterval != 1800 || record.Notify != "both" {
		t.Errorf("options = %d/%d/%s, want defaults 600/1800/both", record.ScanInterval, record.StatInterval, record.Notify)
	}
}

func TestSetupFlow_DuplicateAbortsBeforeValidation(t *testing.T) {
	validator := &fakeValidator{result: &neviweb.ValidationResult{Title: "jane@example.com"}}
	flow, registry := newTestFlow(validator)

	if err := registry.Add(entries.NewEntry(entries.Record{Username: "jane@example.com"})); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Identity is case-insensitive
	result, err := flow.Step(context.Background(), StepUser, userInput("Jane@Example.COM", "hunter2"))
	if err != nil {
		t.Fatalf("Step(user) error = %v", err)
	}

	if result.Type != Abort {
		t.Fatalf("Type = %s, want abort", result.Type)
	}
	if result.Reason != AbortAlreadyConfigured {
		t.Errorf("Reason = %s, want already_configured", result.Reason)
	}

	if validator.calls != 0 {
		t.Errorf("validator calls = %d, want 0 (no remote call for duplicates)", validator.calls)
	}
}

func TestSetupFlow_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"auth failure", neviweb.NewAuthError("invalid username or password"), ErrCodeInvalidAuth},
		{"timeout", neviweb.NewNetworkError("login request failed", context.DeadlineExceeded), ErrCodeCannotConnect},
		{"server failure", neviweb.NewHTTPError(500, "login failed with status 500"), ErrCodeCannotConnect},
		{"service code failure", neviweb.NewServiceCodeError("ACCSESSEXC"), ErrCodeCannotConnect},
		{"parse failure", neviweb.NewParseError("failed to parse login response", nil), ErrCodeCannotConnect},
		{"unexpected failure", errors.New("disk on fire"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, _ := newTestFlow(&fakeValidator{err: tt.err})

			result, err := flow.Step(context.Background(), StepUser, userInput("jane@example.com", "hunter2"))
			if err != nil {
				t.Fatalf("Step(user) error = %v", err)
			}

			// The user form re-renders with the code in the base slot
			if result.Type != ShowForm || result.StepID != StepUser {
				t.Fatalf("type = %s, step = %s, want show_form/user", result.Type, result.StepID)
			}
			if got := result.Errors[BaseError]; got != tt.wantCode {
				t.Errorf("Errors[base] = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestSetupFlow_UnknownStep(t *testing.T) {
	flow, _ := newTestFlow(&fakeValidator{})

	if _, err := flow.Step(context.Background(), "bogus", nil); err == nil {
		t.Error("Step() should fail for unknown step key")
	}
}

func TestSetupFlow_NetworksRerender(t *testing.T) {
	validator := &fakeValidator{result: &neviweb.ValidationResult{
		Title:    "jane@example.com",
		Networks: []string{"Home"},
	}}
	flow, _ := newTestFlow(validator)
	ctx := context.Background()

	if _, err := flow.Step(ctx, StepUser, userInput("jane@example.com", "hunter2")); err != nil {
		t.Fatalf("Step(user) error = %v", err)
	}

	// Re-rendering the networks step keeps the discovered list
	result, err := flow.Step(ctx, StepNetworks, nil)
	if err != nil {
		t.Fatalf("Step(networks, nil) error = %v", err)
	}

	network, _ := result.Schema.Field(entries.KeyNetwork)
	if len(network.Options) != 2 || network.Options[1] != "Home" {
		t.Errorf("network options = %v, want [ Home]", network.Options)
	}
}
