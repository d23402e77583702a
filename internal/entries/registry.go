package entries

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nevihome/neviweb/internal/logging"
)

const (
	appName      = "neviweb"
	registryFile = "entries.yaml"
)

var (
	// ErrDuplicateEntry is returned by Add when an entry with the same
	// identity key already exists.
	ErrDuplicateEntry = errors.New("entries: duplicate unique id")

	// ErrEntryNotFound is returned by Remove and SetOptions when no entry
	// matches the identity key.
	ErrEntryNotFound = errors.New("entries: entry not found")
)

// registryDoc is the on-disk shape of the registry file.
type registryDoc struct {
	Version int      `yaml:"version"`
	Entries []*Entry `yaml:"entries,omitempty"`
}

// Registry holds the persisted account entries and the file they live in.
// All operations are safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	path    string
	entries []*Entry
}

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/neviweb or $HOME/.config/neviweb
//   - macOS: $HOME/.config/neviweb
//   - Windows: %LOCALAPPDATA%\neviweb
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// DefaultPath returns the default registry file path inside the config dir.
func DefaultPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, registryFile), nil
}

// Load reads the registry from the given path. An empty path selects the
// default location. A missing file yields an empty registry bound to the
// same path, so the first Save creates it.
func Load(path string) (*Registry, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve registry path: %w", err)
		}
	}

	registry := &Registry{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry file: %w", err)
	}

	if doc.Version != 1 {
		return nil, fmt.Errorf("unsupported registry version: %d (expected 1)", doc.Version)
	}

	registry.entries = doc.Entries
	return registry, nil
}

// Path returns the file the registry loads from and saves to.
func (r *Registry) Path() string {
	return r.path
}

// Save writes the registry to disk. The write is atomic: the document goes
// to a temporary file first and is renamed into place.
func (r *Registry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := yaml.Marshal(registryDoc{Version: 1, Entries: r.entries})
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	header := []byte(`# Neviweb account entries
# Written by neviweb-cfg. Credentials are stored exactly as entered so the
# integration host can sign in on your behalf; keep this file private.
#
# Location: ` + r.path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary registry file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save registry file: %w", err)
	}

	logging.LogRegistryWrite(r.path, len(r.entries))
	return nil
}

// Add appends a new entry. It fails with ErrDuplicateEntry when an entry
// with the same identity key already exists.
func (r *Registry) Add(entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findLocked(entry.UniqueID) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.UniqueID)
	}

	r.entries = append(r.entries, entry)
	return nil
}

// Get returns the entry for the identity key, or nil when absent. The key
// is normalized, so any casing of the username matches.
func (r *Registry) Get(uniqueID string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(uniqueID)
}

// HasUniqueID reports whether an entry with the identity key exists.
func (r *Registry) HasUniqueID(uniqueID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(uniqueID) != nil
}

// Remove deletes the entry for the identity key.
func (r *Registry) Remove(uniqueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := UniqueID(uniqueID)
	for i, entry := range r.entries {
		if entry.UniqueID == key {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, key)
}

// List returns the entries in registry order. The slice is a copy; the
// entries are shared.
func (r *Registry) List() []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]*Entry, len(r.entries))
	copy(list, r.entries)
	return list
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// SetOptions replaces the options overlay of the entry for the identity key
// and bumps its updated timestamp.
func (r *Registry) SetOptions(uniqueID string, options Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.findLocked(uniqueID)
	if entry == nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, UniqueID(uniqueID))
	}

	entry.Options = &options
	entry.UpdatedAt = time.Now().UTC()
	return nil
}

// findLocked looks up an entry by normalized identity key. Callers hold mu.
func (r *Registry) findLocked(uniqueID string) *Entry {
	key := UniqueID(uniqueID)
	for _, entry := range r.entries {
		if entry.UniqueID == key {
			return entry
		}
	}
	return nil
}
