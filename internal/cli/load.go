package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/files/filesystem"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/services"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/store"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Insert the places and people files into the database",
	Long: `Load reads the places file and inserts every row into the places table,
commits, then does the same for the people file and the people table.

Columns are matched by header name; extra columns are ignored. Values are
passed to the database verbatim, so an invalid date_of_birth or an
over-long field is rejected by the database and stops the run.

Any failure is fatal. The file being loaded is rolled back; places that
were already committed stay committed. Rows are appended, so running load
twice duplicates every row.

Examples:
  # Defaults: data/places.csv and data/people.csv
  codetest load -d codetest

  # Explicit files and a semicolon separated export
  codetest load --places exports/places.csv --people exports/people.csv --delimiter ';'

  # Connection from the environment
  export DATABASE_URL=postgresql://codetest@db:5432/codetest
  codetest load`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

type loadFlagValues struct {
	conn                      connectionFlags
	places, people, delimiter string
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	addConnectionFlags(loadCmd, &loadFlags.conn)

	// Precedence: flag > CODETEST_* > codetest.yaml > default
	loadCmd.Flags().StringVar(&loadFlags.places, "places", "",
		"Places file (default: $CODETEST_PLACES_FILE, input.places or "+codetest.DefaultPlacesFile+")")
	loadCmd.Flags().StringVar(&loadFlags.people, "people", "",
		"People file (default: $CODETEST_PEOPLE_FILE, input.people or "+codetest.DefaultPeopleFile+")")
	loadCmd.Flags().StringVar(&loadFlags.delimiter, "delimiter", "",
		"Field separator, a single character (default: $CODETEST_DELIMITER, input.delimiter or ',')")
}

// buildLoadConfig builds a LoadConfig from flags, environment and codetest.yaml.
func buildLoadConfig(cmd *cobra.Command) (codetest.LoadConfig, error) {
	projectCfg, overrides, err := loadProjectConfig(cmd)
	if err != nil {
		return codetest.LoadConfig{}, err
	}

	connConfig, err := resolveConnectionFromFlags(loadFlags.conn, projectCfg, overrides)
	if err != nil {
		return codetest.LoadConfig{}, err
	}

	// The project value, env included, was validated as one character.
	delimiter := rune(codetest.DefaultDelimiter)
	if r := projectCfg.Input.DelimiterRune(); r != 0 {
		delimiter = r
	}
	if loadFlags.delimiter != "" {
		if delimiter, err = parseDelimiter(loadFlags.delimiter); err != nil {
			return codetest.LoadConfig{}, err
		}
	}

	return codetest.LoadConfig{
		PlacesPath: pick(loadFlags.places, projectCfg.Input.Places, codetest.DefaultPlacesFile),
		PeoplePath: pick(loadFlags.people, projectCfg.Input.People, codetest.DefaultPeopleFile),
		Delimiter:  delimiter,
		Connection: connConfig,
	}, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	cfg, err := buildLoadConfig(cmd)
	if err != nil {
		return err
	}
	logConnectionVerbose(logger, cfg.Connection)

	ctx, stop := signalContext(cmd)
	defer stop()

	loader := services.NewLoadService(store.Opener(logger), filesystem.NewOSFileSystem(), logger)
	result, err := loader.Load(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	logger.Info("Loaded %d places and %d people", result.Places, result.People)
	return nil
}
