package cli

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/config"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/db"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	azure          bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
	sslCert        string
	sslKey         string
	sslRootCert    string
}

// addConnectionFlags registers the connection flags shared by every
// command that talks to the database.
func addConnectionFlags(cmd *cobra.Command, f *connectionFlags) {
	flags := cmd.Flags()

	flags.StringVar(&f.connection, "connection", "",
		"PostgreSQL connection string (URI or key=value format).\n"+
			"Mutually exclusive with granular flags (--host, --port, --username, --sslmode).\n"+
			"Alternative: CODETEST_CONNECTION_STRING or DATABASE_URL environment variable.\n"+
			"Example: postgresql://codetest@localhost:5432/codetest")

	// Precedence: flag > environment variable > codetest.yaml > default
	flags.StringVarP(&f.host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $PGHOST > codetest.yaml > localhost")
	flags.IntVarP(&f.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $PGPORT > codetest.yaml > 5432")
	flags.StringVarP(&f.username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER or current OS user)")
	flags.StringVarP(&f.database, "database", "d", "",
		"Database holding the places and people tables (default: $PGDATABASE or codetest)\n"+
			"Overrides the database of a connection string")
	flags.StringVar(&f.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")
	flags.StringVar(&f.sslCert, "sslcert", "", "Client certificate file")
	flags.StringVar(&f.sslKey, "sslkey", "", "Client certificate key file")
	flags.StringVar(&f.sslRootCert, "sslrootcert", "", "Root certificate file for verify-ca and verify-full")

	flags.BoolVar(&f.azure, "azure", false,
		"Enable Azure Entra ID authentication\n"+
			"Uses a service principal when $AZURE_CLIENT_SECRET is set, DefaultAzureCredential otherwise")
	flags.StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	flags.StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")

	flags.BoolVar(&f.aws, "aws", false,
		"Enable AWS RDS IAM authentication\n"+
			"Uses the default AWS credential chain")
	flags.StringVar(&f.awsRegion, "aws-region", "", "AWS region of the RDS instance (overrides $AWS_REGION)")

	flags.BoolVar(&f.google, "google", false,
		"Enable Google Cloud SQL IAM authentication through the Cloud SQL connector")
	flags.StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")
}

// loadProjectConfig loads .env, the project file and the CODETEST_*
// environment, in that order. A missing project file is only an error when
// --config names it.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, config.EnvOverrides, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""

	var projectCfg *config.ProjectConfig
	var err error
	if explicit {
		projectCfg, err = config.LoadFile(path)
	} else {
		path = config.ConfigFileName
		projectCfg, err = config.Load(".")
	}
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && !explicit:
		projectCfg = &config.ProjectConfig{}
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, config.EnvOverrides{}, fmt.Errorf("%s: %w: %w", path, err, codetest.ErrInvalidConfig)
	case err != nil && !errors.Is(err, codetest.ErrInvalidConfig):
		return nil, config.EnvOverrides{}, fmt.Errorf("failed to load %s: %w: %w", path, err, codetest.ErrInvalidConfig)
	case err != nil:
		return nil, config.EnvOverrides{}, err
	}

	overrides, err := config.LoadEnvOverrides()
	if err != nil {
		return nil, config.EnvOverrides{}, fmt.Errorf("%w: %w", codetest.ErrInvalidConfig, err)
	}
	if err := projectCfg.ApplyEnv(overrides); err != nil {
		return nil, config.EnvOverrides{}, err
	}

	return projectCfg, overrides, nil
}

// resolveConnectionFromFlags resolves connection configuration from flags,
// environment and project config.
func resolveConnectionFromFlags(
	flags connectionFlags,
	projectCfg *config.ProjectConfig,
	overrides config.EnvOverrides,
) (*codetest.ConnectionConfig, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		SSLMode:  flags.sslMode,
	}

	azureFlags := &db.AzureFlags{
		Enabled:  flags.azure,
		TenantID: flags.azureTenantID,
		ClientID: flags.azureClientID,
	}

	awsFlags := &db.AWSFlags{
		Enabled: flags.aws,
		Region:  flags.awsRegion,
	}

	googleFlags := &db.GoogleFlags{
		Enabled:  flags.google,
		Instance: flags.googleInstance,
	}

	certFlags := &db.CertFlags{
		SSLCert:     flags.sslCert,
		SSLKey:      flags.sslKey,
		SSLRootCert: flags.sslRootCert,
	}

	envVars := db.LoadFromEnvironment()
	envVars.CODETEST_CONNECTION_STRING = overrides.ConnectionString

	return db.ResolveConnectionParams(
		flags.connection,
		granularFlags,
		azureFlags,
		awsFlags,
		googleFlags,
		certFlags,
		envVars,
		projectCfg,
	)
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger codetest.Logger, connConfig *codetest.ConnectionConfig) {
	logger.Verbose("Connection resolved: %s (auth: %s)", db.RedactedConnectionString(connConfig), connConfig.AuthMethod)
}

// pick returns the flag value when set, then the project value, then def.
// The project value already carries any CODETEST_* override.
func pick(flag, project, def string) string {
	if flag != "" {
		return flag
	}
	if project != "" {
		return project
	}
	return def
}

// parseDelimiter accepts exactly one character.
func parseDelimiter(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q must be a single character: %w", s, codetest.ErrInvalidConfig)
	}
	return r, nil
}
