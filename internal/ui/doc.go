// Package ui provides terminal output components for the neviweb-cfg CLI.
//
// This package uses Lipgloss to render styled terminal output for the plain
// (non-TUI) mode and for one-shot commands such as accounts, networks, and
// remove. Unlike the interactive wizard under wizard/tui, these components
// follow a "print and move on" pattern: they write to a writer and never take
// over the terminal.
//
// # Architecture
//
// The package provides four component types:
//
//   - Header: command banner showing the operation name and its parameters
//   - Result: success/failure/warning boxes with styled details
//   - Prompter: line-oriented field prompts for plain-mode forms
//   - Printer: a writer-bound facade the commands print everything through
//
// RunFlow ties them together: it drives a flow.Flow step by step, prompting
// for each form with the Prompter and returning the terminal result for the
// command to act on.
//
// # Plain Mode
//
// The wizard falls back to plain mode when stdout is not a terminal or when
// --plain is passed. Prompter reads answers line by line from stdin, masking
// the password with terminal echo disabled when stdin is a terminal and
// falling back to a visible read when it is not (pipes, CI).
//
// # Logging Integration
//
// Logging is controlled via the NEVIWEB_LOG_LEVEL environment variable. When
// unset, zap is silent so the curated output stays clean. Set it to "debug",
// "info", "warn", or "error" to interleave log lines with the UI.
package ui
