package flow

import "github.com/nevihome/neviweb/internal/entries"

// EntryBuilder accumulates the setup wizard's draft across steps. It is
// carried by value: every With method returns a modified copy, so a step
// transition can never mutate the draft a previous step captured.
//
// Example:
//
//	draft := EntryBuilder{}.
//	    WithCredentials("jane@example.com", "hunter2").
//	    WithDiscovered([]string{"Home", "Cottage"}).
//	    WithSelections("Home", "", "").
//	    WithOptions(entries.DefaultOptions())
//	record := draft.Build()
type EntryBuilder struct {
	username string
	password string

	// discovered holds the service's sub-network names. Treated as
	// immutable once set.
	discovered []string

	network  string
	network2 string
	network3 string

	options entries.Options
}

// WithCredentials records the validated account credentials.
func (b EntryBuilder) WithCredentials(username, password string) EntryBuilder {
	b.username = username
	b.password = password
	return b
}

// WithDiscovered records the sub-networks the service reported.
func (b EntryBuilder) WithDiscovered(networks []string) EntryBuilder {
	b.discovered = networks
	return b
}

// WithSelections records the user's network choices. Empty slots stay
// empty; they are omitted from the persisted record.
func (b EntryBuilder) WithSelections(network, network2, network3 string) EntryBuilder {
	b.network = network
	b.network2 = network2
	b.network3 = network3
	return b
}

// WithOptions records the polling options.
func (b EntryBuilder) WithOptions(options entries.Options) EntryBuilder {
	b.options = options
	return b
}

// Username returns the credentials' username, the wizard's display title.
func (b EntryBuilder) Username() string {
	return b.username
}

// Discovered returns the sub-network names recorded by WithDiscovered.
func (b EntryBuilder) Discovered() []string {
	return b.discovered
}

// Build assembles the final record from the accumulated draft.
func (b EntryBuilder) Build() entries.Record {
	return entries.Record{
		Username:     b.username,
		Password:     b.password,
		Network:      b.network,
		Network2:     b.network2,
		Network3:     b.network3,
		ScanInterval: b.options.ScanInterval,
		StatInterval: b.options.StatInterval,
		HomekitMode:  b.options.HomekitMode,
		IgnoreMiwi:   b.options.IgnoreMiwi,
		Notify:       b.options.Notify,
	}
}
