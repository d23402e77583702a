// Package entries persists completed Neviweb account configurations.
//
// Each wizard run that reaches completion produces an Entry: the account
// credentials, the chosen sub-networks and the polling options, wrapped in
// a registry envelope (UUID, display title, identity key, timestamps). The
// registry is a YAML file stored in the platform config directory:
//   - Linux: $XDG_CONFIG_HOME/neviweb/entries.yaml or $HOME/.config/neviweb/entries.yaml
//   - macOS: $HOME/.config/neviweb/entries.yaml
//   - Windows: %LOCALAPPDATA%\neviweb\entries.yaml
//
// # Security
//
// The registry stores the account password as provided so the integration
// host can replay logins. The file is written with 0600 permissions and a
// header comment reminding users to keep it private.
//
// # Identity
//
// Entries are keyed by the lower-cased username. The registry rejects a
// second entry with the same identity key; lookups normalize their argument
// the same way, so Get("Jane@Example.com") finds an entry created for
// "jane@example.com".
//
// # Usage Example
//
//	registry, err := entries.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	entry := entries.NewEntry(record)
//	if err := registry.Add(entry); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// All registry operations are serialized behind the registry's mutex; Save
// writes atomically (temp file + rename).
package entries
