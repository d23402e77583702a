package entries

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field names shared by the persisted YAML keys and the wizard form fields.
const (
	KeyUsername     = "username"
	KeyPassword     = "password"
	KeyNetwork      = "network"
	KeyNetwork2     = "network2"
	KeyNetwork3     = "network3"
	KeyScanInterval = "scan_interval"
	KeyStatInterval = "stat_interval"
	KeyHomekitMode  = "homekit_mode"
	KeyIgnoreMiwi   = "ignore_miwi"
	KeyNotify       = "notify"
)

// Polling bounds and option defaults.
const (
	MinScanInterval = 300
	MaxScanInterval = 600
	MinStatInterval = 300
	MaxStatInterval = 1800

	DefaultScanInterval = 600
	DefaultStatInterval = 1800
	DefaultNotify       = NotifyBoth
)

// Notification modes.
const (
	NotifyBoth         = "both"
	NotifyLogging      = "logging"
	NotifyNothing      = "nothing"
	NotifyNotification = "notification"
)

// NotifyModes lists the accepted notification modes in display order.
var NotifyModes = []string{NotifyBoth, NotifyLogging, NotifyNothing, NotifyNotification}

// Record is the configuration payload assembled by the setup wizard:
// credentials, optional sub-network selections and the polling options in
// effect at creation time.
type Record struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Network      string `yaml:"network,omitempty"`
	Network2     string `yaml:"network2,omitempty"`
	Network3     string `yaml:"network3,omitempty"`
	ScanInterval int    `yaml:"scan_interval"`
	StatInterval int    `yaml:"stat_interval"`
	HomekitMode  bool   `yaml:"homekit_mode"`
	IgnoreMiwi   bool   `yaml:"ignore_miwi"`
	Notify       string `yaml:"notify"`
}

// Networks returns the non-empty sub-network selections in slot order.
func (r Record) Networks() []string {
	var networks []string
	for _, n := range []string{r.Network, r.Network2, r.Network3} {
		if n != "" {
			networks = append(networks, n)
		}
	}
	return networks
}

// Options is the polling overlay the options-editing flow writes. When
// present it wins over the option values embedded in the Record.
type Options struct {
	ScanInterval int    `yaml:"scan_interval"`
	StatInterval int    `yaml:"stat_interval"`
	HomekitMode  bool   `yaml:"homekit_mode"`
	IgnoreMiwi   bool   `yaml:"ignore_miwi"`
	Notify       string `yaml:"notify"`
}

// DefaultOptions returns the option values applied when the user accepts
// every default.
func DefaultOptions() Options {
	return Options{
		ScanInterval: DefaultScanInterval,
		StatInterval: DefaultStatInterval,
		HomekitMode:  false,
		IgnoreMiwi:   false,
		Notify:       DefaultNotify,
	}
}

// Entry is the registry envelope around a Record.
type Entry struct {
	// ID is a stable random identifier for the entry.
	ID string `yaml:"id"`

	// Title is the display name, the username as entered.
	Title string `yaml:"title"`

	// UniqueID is the identity key, the lower-cased username.
	UniqueID string `yaml:"unique_id"`

	// Record holds the configuration created by the wizard.
	Record Record `yaml:"record"`

	// Options, when set, overrides the record's option values. Written by
	// the options-editing flow; nil until the first edit.
	Options *Options `yaml:"options,omitempty"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// NewEntry wraps a completed record in a registry envelope. Title and
// identity key derive from the record's username.
func NewEntry(record Record) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        uuid.NewString(),
		Title:     record.Username,
		UniqueID:  UniqueID(record.Username),
		Record:    record,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueID derives the registry identity key from a username. Identity is
// case-insensitive; the same account spelled with different casing maps to
// one key.
func UniqueID(username string) string {
	return strings.ToLower(username)
}

// EffectiveOptions returns the options overlay when present, otherwise the
// option values embedded in the record.
func (e *Entry) EffectiveOptions() Options {
	if e.Options != nil {
		return *e.Options
	}
	return Options{
		ScanInterval: e.Record.ScanInterval,
		StatInterval: e.Record.StatInterval,
		HomekitMode:  e.Record.HomekitMode,
		IgnoreMiwi:   e.Record.IgnoreMiwi,
		Notify:       e.Record.Notify,
	}
}
