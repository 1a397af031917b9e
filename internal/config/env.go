package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every job-level environment variable.
const EnvPrefix = "CODETEST_"

// EnvOverrides holds the CODETEST_* variables. Empty means unset.
//
//	CODETEST_PLACES_FILE       -> input.places
//	CODETEST_PEOPLE_FILE       -> input.people
//	CODETEST_DELIMITER         -> input.delimiter
//	CODETEST_SUMMARY_FILE      -> output.summary
//	CODETEST_CONNECTION_STRING -> full connection string
type EnvOverrides struct {
	PlacesFile       string `koanf:"places_file"`
	PeopleFile       string `koanf:"people_file"`
	Delimiter        string `koanf:"delimiter"`
	SummaryFile      string `koanf:"summary_file"`
	ConnectionString string `koanf:"connection_string"`
}

// LoadEnvOverrides reads CODETEST_* variables from the process environment.
func LoadEnvOverrides() (EnvOverrides, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to read %s* environment: %w", EnvPrefix, err)
	}

	var o EnvOverrides
	if err := k.Unmarshal("", &o); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to decode %s* environment: %w", EnvPrefix, err)
	}
	return o, nil
}

// ApplyEnv overlays non-empty overrides onto the file settings and
// re-validates the result.
func (c *ProjectConfig) ApplyEnv(o EnvOverrides) error {
	if o.PlacesFile != "" {
		c.Input.Places = o.PlacesFile
	}
	if o.PeopleFile != "" {
		c.Input.People = o.PeopleFile
	}
	if o.Delimiter != "" {
		c.Input.Delimiter = o.Delimiter
	}
	if o.SummaryFile != "" {
		c.Output.Summary = o.SummaryFile
	}
	return c.Validate()
}
