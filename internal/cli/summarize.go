package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/files/filesystem"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/services"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/store"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

var summarizeCmd = &cobra.Command{
	Use:     "summarize",
	Aliases: []string{"summarise", "report"},
	Short:   "Write the number of people born in each country to a JSON file",
	Long: `Summarize joins people to places on place_of_birth = city, counts the
people per country and replaces the output file with a JSON array:

  [
      {
          "country": "UK",
          "count": 2
      }
  ]

People whose birthplace matches no city, and places nobody was born in,
are left out. The output file is replaced atomically and left untouched
if the query fails. Running summarize twice produces the same file.

Examples:
  codetest summarize -d codetest
  codetest summarize --output /tmp/summary.json`,
	Args: cobra.NoArgs,
	RunE: runSummarize,
}

type summarizeFlagValues struct {
	conn   connectionFlags
	output string
}

var summarizeFlags summarizeFlagValues

func init() {
	rootCmd.AddCommand(summarizeCmd)

	addConnectionFlags(summarizeCmd, &summarizeFlags.conn)

	summarizeCmd.Flags().StringVarP(&summarizeFlags.output, "output", "o", "",
		"Summary file (default: $CODETEST_SUMMARY_FILE, output.summary or "+codetest.DefaultSummaryFile+")")
}

// buildReportConfig builds a ReportConfig from flags, environment and codetest.yaml.
func buildReportConfig(cmd *cobra.Command) (codetest.ReportConfig, error) {
	projectCfg, overrides, err := loadProjectConfig(cmd)
	if err != nil {
		return codetest.ReportConfig{}, err
	}

	connConfig, err := resolveConnectionFromFlags(summarizeFlags.conn, projectCfg, overrides)
	if err != nil {
		return codetest.ReportConfig{}, err
	}

	return codetest.ReportConfig{
		OutputPath: pick(summarizeFlags.output, projectCfg.Output.Summary, codetest.DefaultSummaryFile),
		Connection: connConfig,
	}, nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	cfg, err := buildReportConfig(cmd)
	if err != nil {
		return err
	}
	logConnectionVerbose(logger, cfg.Connection)

	ctx, stop := signalContext(cmd)
	defer stop()

	reporter := services.NewReportService(store.Opener(logger), filesystem.NewOSFileSystem(), logger)
	if _, err := reporter.Report(ctx, cfg); err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}
	return nil
}
