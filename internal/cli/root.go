package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/config"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "codetest",
	Short: "Load places and people into PostgreSQL and summarise births per country",
	Long: `codetest runs the two batch jobs of the data pipeline.

  codetest load        inserts places.csv, then people.csv, one transaction per file
  codetest summarize   counts people per country of birth into a JSON file
  codetest schema      creates the places and people tables if they are absent

Settings are taken, per setting, from flags, then the environment
(CODETEST_*, PG*, DATABASE_URL), then codetest.yaml, then built-in defaults.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - Input file missing or unreadable
  13 - Input file is not a valid table
  14 - Insert or commit rejected by the database
  15 - Summary query failed
  16 - Summary file could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// No -h shorthand for help; -h is --host, as in psql.
	rootCmd.PersistentFlags().Bool("help", false, "Help for codetest")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to the project file (default: ./"+config.ConfigFileName+" if present)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write log entries as JSON lines")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func newLogger(cmd *cobra.Command) *logging.ConsoleLogger {
	format := logging.FormatConsole
	if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
		format = logging.FormatJSON
	}
	return logging.NewLogger(cmd.ErrOrStderr(), format, getVerboseFlag(cmd))
}

// signalContext cancels the command context on Ctrl+C or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
