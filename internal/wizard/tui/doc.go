// Package tui implements the interactive terminal wizard for neviweb-cfg.
//
// The wizard is a Bubble Tea program that walks a configuration flow step by
// step. Each form the flow asks for is rendered as a huh form embedded in the
// application frame; submissions are validated locally against the form
// schema and then dispatched back to the flow from a background command, so
// the spinner keeps animating while the wizard signs in to Neviweb.
//
// # Architecture
//
// The package follows the Elm architecture with a single top-level Model:
//
//   - phaseBusy: a flow step is executing; spinner and status text shown
//   - phaseForm: a huh form is collecting input for the current step
//   - phaseDone: the flow produced a terminal result; the program quits
//
// The model never interprets flow semantics. It renders whatever schema the
// flow hands back, reports base error codes through flow.ErrorText, and
// returns the terminal result to the caller, which persists entries and
// prints the outcome after the alternate screen is restored.
//
// # Framework Components
//
//   - huh: form rendering, field navigation, inline validation
//   - bubbles/spinner: busy indicator during network calls
//   - lipgloss: styling and the application container layout
//
// # Usage Example
//
//	setup := flow.NewSetupFlow(registry, client, pool)
//	result, completed, err := tui.Run(ctx, setup)
//	if err != nil {
//	    return err
//	}
//	if !completed {
//	    fmt.Println("Setup cancelled.")
//	    return nil
//	}
//	// act on result.Type: CreateEntry, UpdateEntry, or Abort
package tui
