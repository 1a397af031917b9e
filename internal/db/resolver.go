package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/config"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag.
// Use one of these methods instead:
//  1. $PGPASSWORD environment variable
//  2. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// Database is excluded because -d may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// AzureFlags represents Azure Entra ID CLI flags.
// The client secret only comes from $AZURE_CLIENT_SECRET.
type AzureFlags struct {
	Enabled  bool
	TenantID string // Overrides AZURE_TENANT_ID
	ClientID string // Overrides AZURE_CLIENT_ID
}

// AWSFlags represents AWS RDS IAM CLI flags.
type AWSFlags struct {
	Enabled bool
	Region  string // Overrides AWS_REGION
}

// GoogleFlags represents Google Cloud SQL IAM CLI flags.
type GoogleFlags struct {
	Enabled  bool
	Instance string // project:region:instance
}

// CertFlags holds client certificate paths passed through to the driver.
type CertFlags struct {
	SSLCert     string
	SSLKey      string
	SSLRootCert string
}

// EnvVars represents PostgreSQL standard and cloud SDK environment variables.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	PGAPPNAME    string
	DATABASE_URL string // Full connection string (Heroku/Rails convention)

	// CODETEST_CONNECTION_STRING wins over DATABASE_URL. It is read with the
	// other CODETEST_* variables, see config.LoadEnvOverrides.
	CODETEST_CONNECTION_STRING string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
	AWS_REGION          string
}

// LoadFromEnvironment loads PostgreSQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:              os.Getenv("PGHOST"),
		PGPORT:              os.Getenv("PGPORT"),
		PGUSER:              os.Getenv("PGUSER"),
		PGPASSWORD:          os.Getenv("PGPASSWORD"),
		PGDATABASE:          os.Getenv("PGDATABASE"),
		PGSSLMODE:           os.Getenv("PGSSLMODE"),
		PGAPPNAME:           os.Getenv("PGAPPNAME"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
	}
}

func (e *EnvVars) connectionString() string {
	if e.CODETEST_CONNECTION_STRING != "" {
		return e.CODETEST_CONNECTION_STRING
	}
	return e.DATABASE_URL
}

// ResolveConnectionParams resolves connection parameters using PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection), parsed and used directly
//  2. $CODETEST_CONNECTION_STRING or $DATABASE_URL, if no granular flags are given
//  3. Per field: granular flag > PG* environment > codetest.yaml > default
//
// The -d flag overrides the database of a connection string. A cloud
// authentication method is chosen by at most one of --azure, --aws and
// --google, falling back to auth_method in codetest.yaml.
//
// Returns an ErrInvalidConfig error if BOTH --connection and granular flags
// are provided, or if more than one cloud method is enabled.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	certFlags *CertFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*codetest.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if awsFlags == nil {
		awsFlags = &AWSFlags{}
	}
	if googleFlags == nil {
		googleFlags = &GoogleFlags{}
	}
	if certFlags == nil {
		certFlags = &CertFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U, --sslmode)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://codetest@localhost:5432/codetest\"\n"+
				"  2. Granular flags: -h localhost -p 5432 -U codetest -d codetest\n"+
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=codetest: %w",
			codetest.ErrInvalidConfig,
		)
	}

	var cfg *codetest.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, granularFlags.Database, envVars)
	case granularFlags.IsEmpty() && envVars.connectionString() != "":
		cfg, err = resolveFromConnectionString(envVars.connectionString(), granularFlags.Database, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, pc)
	}
	if err != nil {
		return nil, err
	}

	applyCerts(cfg, certFlags, pc)

	if cfg.AppName == "" {
		cfg.AppName = envVars.PGAPPNAME
	}
	if cfg.AppName == "" {
		cfg.AppName = codetest.DefaultAppName
	}

	if err := applyCloudAuth(cfg, azureFlags, awsFlags, googleFlags, envVars, pc); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveFromConnectionString parses a connection string. $PGPASSWORD and
// $PGSSLMODE act as fallbacks for parameters the string leaves out, as libpq does.
func resolveFromConnectionString(connStr, databaseFlag string, envVars *EnvVars) (*codetest.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %v: %w", err, codetest.ErrInvalidConfig)
	}

	if databaseFlag != "" {
		cfg.Database = databaseFlag
	}
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = codetest.DefaultSSLMode
	}

	return cfg, nil
}

// resolveFromGranularParams builds a ConnectionConfig field by field:
// CLI flag > environment variable > codetest.yaml > default.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	pc config.ConnectionConfig,
) (*codetest.ConnectionConfig, error) {
	cfg := &codetest.ConnectionConfig{
		AuthMethod:       codetest.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, codetest.DefaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer: %w", envVars.PGPORT, codetest.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = codetest.DefaultPort
	}

	// Username falls back to the current OS user, as psql does.
	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, pc.Database, codetest.DefaultDatabase)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, codetest.DefaultSSLMode)

	return cfg, nil
}

func applyCerts(cfg *codetest.ConnectionConfig, flags *CertFlags, pc config.ConnectionConfig) {
	if cfg.AdditionalParams == nil {
		cfg.AdditionalParams = make(map[string]string)
	}
	set := func(key string, values ...string) {
		if v := firstNonEmpty(values...); v != "" {
			cfg.AdditionalParams[key] = v
		}
	}
	set("sslcert", flags.SSLCert, pc.SSLCert)
	set("sslkey", flags.SSLKey, pc.SSLKey)
	set("sslrootcert", flags.SSLRootCert, pc.SSLRootCert)
}

// applyCloudAuth selects the authentication method and attaches its
// parameters. Flags take precedence over environment variables, which take
// precedence over codetest.yaml.
func applyCloudAuth(
	cfg *codetest.ConnectionConfig,
	azure *AzureFlags,
	aws *AWSFlags,
	google *GoogleFlags,
	env *EnvVars,
	pc config.ConnectionConfig,
) error {
	enabled := 0
	for _, on := range []bool{azure.Enabled, aws.Enabled, google.Enabled} {
		if on {
			enabled++
		}
	}
	if enabled > 1 {
		return fmt.Errorf("only one of --azure, --aws and --google may be set: %w", codetest.ErrInvalidConfig)
	}

	var method codetest.AuthMethod
	switch {
	case azure.Enabled:
		method = codetest.AuthMethodAzureEntraID
	case aws.Enabled:
		method = codetest.AuthMethodAWSIAM
	case google.Enabled:
		method = codetest.AuthMethodGoogleIAM
	default:
		m, err := codetest.ParseAuthMethod(pc.AuthMethod)
		if err != nil {
			return err
		}
		method = m
	}
	cfg.AuthMethod = method

	switch method {
	case codetest.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(azure.TenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(azure.ClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	case codetest.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(aws.Region, env.AWS_REGION, pc.AWSRegion)
	case codetest.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(google.Instance, pc.GoogleInstance)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
