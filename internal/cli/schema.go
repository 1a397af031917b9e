package cli

import (
	"github.com/spf13/cobra"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/db"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/store"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the places and people tables if they do not exist",
	Long: `Schema creates the places and people tables with CREATE TABLE IF NOT EXISTS.
Existing tables are left as they are; nothing is altered or migrated.

Example:
  codetest schema -h localhost -U codetest -d codetest`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

var schemaFlags connectionFlags

func init() {
	rootCmd.AddCommand(schemaCmd)

	addConnectionFlags(schemaCmd, &schemaFlags)
}

func runSchema(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	projectCfg, overrides, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	connConfig, err := resolveConnectionFromFlags(schemaFlags, projectCfg, overrides)
	if err != nil {
		return err
	}
	logConnectionVerbose(logger, connConfig)

	ctx, stop := signalContext(cmd)
	defer stop()

	connector, err := db.NewConnector(connConfig, logger)
	if err != nil {
		return err
	}
	s, err := store.Open(ctx, connector)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(ctx); err != nil {
			logger.Error("failed to close database connection: %v", err)
		}
	}()

	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	logger.Info("Tables %s and %s are in place in %s", codetest.PlacesTable, codetest.PeopleTable, connConfig.Database)
	return nil
}
