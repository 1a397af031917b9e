package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CODETEST_PLACES_FILE", "/env/places.csv")
	t.Setenv("CODETEST_PEOPLE_FILE", "/env/people.csv")
	t.Setenv("CODETEST_DELIMITER", "|")
	t.Setenv("CODETEST_SUMMARY_FILE", "/env/summary.json")
	t.Setenv("CODETEST_CONNECTION_STRING", "postgresql://u@h/db")

	o, err := LoadEnvOverrides()
	require.NoError(t, err)

	assert.Equal(t, "/env/places.csv", o.PlacesFile)
	assert.Equal(t, "/env/people.csv", o.PeopleFile)
	assert.Equal(t, "|", o.Delimiter)
	assert.Equal(t, "/env/summary.json", o.SummaryFile)
	assert.Equal(t, "postgresql://u@h/db", o.ConnectionString)
}

func TestLoadEnvOverrides_IgnoresOtherPrefixes(t *testing.T) {
	t.Setenv("PLACES_FILE", "/wrong.csv")
	t.Setenv("CODETESTX_PLACES_FILE", "/wrong.csv")

	o, err := LoadEnvOverrides()
	require.NoError(t, err)
	assert.Empty(t, o.PlacesFile)
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	cfg := &ProjectConfig{
		Input:  InputConfig{Places: "file-places.csv", People: "file-people.csv"},
		Output: OutputConfig{Summary: "file.json"},
	}

	err := cfg.ApplyEnv(EnvOverrides{PlacesFile: "env-places.csv", SummaryFile: "env.json"})
	require.NoError(t, err)

	assert.Equal(t, "env-places.csv", cfg.Input.Places)
	assert.Equal(t, "file-people.csv", cfg.Input.People, "unset override must keep file value")
	assert.Equal(t, "env.json", cfg.Output.Summary)
}

func TestApplyEnv_ValidatesDelimiter(t *testing.T) {
	cfg := &ProjectConfig{}

	err := cfg.ApplyEnv(EnvOverrides{Delimiter: "ab"})
	require.Error(t, err)
	assert.ErrorIs(t, err, codetest.ErrInvalidConfig)
}
