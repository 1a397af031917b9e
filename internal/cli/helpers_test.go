package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

var settingEnvVars = []string{
	"CODETEST_PLACES_FILE", "CODETEST_PEOPLE_FILE", "CODETEST_DELIMITER",
	"CODETEST_SUMMARY_FILE", "CODETEST_CONNECTION_STRING", "DATABASE_URL",
	"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE", "PGAPPNAME",
	"AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET", "AWS_REGION",
}

func resetFlags() {
	loadFlags = loadFlagValues{}
	summarizeFlags = summarizeFlagValues{}
	schemaFlags = connectionFlags{}
	_ = rootCmd.PersistentFlags().Set("config", "")
	_ = rootCmd.PersistentFlags().Set("verbose", "false")
	_ = rootCmd.PersistentFlags().Set("log-json", "false")
	_ = rootCmd.PersistentFlags().Set("help", "false")
}

// prepareCommand clears flags and the settings environment, then parses args
// for cmd the way Execute would.
func prepareCommand(t *testing.T, cmd *cobra.Command, args ...string) {
	t.Helper()

	resetFlags()
	t.Cleanup(resetFlags)
	for _, name := range settingEnvVars {
		t.Setenv(name, "")
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "codetest.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
