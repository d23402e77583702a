// Package settings loads tool-wide tunables from an optional config file,
// NEVIWEB_* environment variables and built-in defaults, in that order of
// precedence (environment wins).
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultHost is the production Neviweb service endpoint.
	DefaultHost = "https://neviweb.com"

	// DefaultTimeout bounds every request to the Neviweb service.
	DefaultTimeout = 30 * time.Second
)

// Settings holds the resolved configuration for a neviweb-cfg run.
type Settings struct {
	// Host is the base URL of the Neviweb service, without a trailing slash.
	Host string

	// Timeout applies to each individual cloud API request.
	Timeout time.Duration

	// RegistryFile overrides the location of the entry registry.
	// Empty means the per-user default under the config directory.
	RegistryFile string
}

// Load reads config.yaml from configDir if one exists, overlays NEVIWEB_*
// environment variables and fills the rest from defaults. A missing config
// file is not an error; a malformed one is.
func Load(configDir string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("neviweb")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", DefaultHost)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("registry.file", "")

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read settings: %w", err)
			}
		}
	}

	return fromViper(v), nil
}

// fromViper resolves the final values, guarding against empty or nonsense
// overrides the same way a missing key is handled.
func fromViper(v *viper.Viper) *Settings {
	s := &Settings{
		Host:         strings.TrimRight(v.GetString("host"), "/"),
		Timeout:      v.GetDuration("timeout"),
		RegistryFile: v.GetString("registry.file"),
	}

	if s.Host == "" {
		s.Host = DefaultHost
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}

	return s
}
