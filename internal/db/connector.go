package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/logging"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// parseConnConfig turns a ConnectionConfig into a pgx config. Server
// notices are forwarded to the logger at verbose level.
func parseConnConfig(config *codetest.ConnectionConfig, logger codetest.Logger) (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(BuildConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %v: %w", err, codetest.ErrInvalidConfig)
	}

	connConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("server %s: %s", strings.ToLower(notice.Severity), notice.Message)
	}
	return connConfig, nil
}

// StandardConnector implements the Connector interface for standard
// username/password authentication. A failed attempt is final.
type StandardConnector struct {
	config *codetest.ConnectionConfig
	logger codetest.Logger
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *codetest.ConnectionConfig, logger codetest.Logger) *StandardConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &StandardConnector{
		config: config,
		logger: logger,
	}
}

// Connect opens a single session using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	connConfig, err := parseConnConfig(c.config, c.logger)
	if err != nil {
		return nil, err
	}
	return connect(ctx, connConfig, c.config)
}

func connect(ctx context.Context, connConfig *pgx.ConnConfig, config *codetest.ConnectionConfig) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codetest.ErrConnectionFailed,
			wrapConnectionError(err, config.Host, config.Port, config.Database))
	}
	return conn, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *codetest.ConnectionConfig, logger codetest.Logger) (codetest.Connector, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	switch config.AuthMethod {
	case codetest.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case codetest.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case codetest.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case codetest.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, codetest.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - The database container has not finished starting

Original error: %w`, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - The database service is not on the same network
  - DNS is not configured or reachable

Original error: %w`, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or the connection string)
  - Wrong username
  - User does not have access to the database

Original error: %w`, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but --sslmode is wrong
  - Certificate verification failed (try --sslmode=require)
  - Client certificates missing (check sslcert and sslkey in codetest.yaml)

Original error: %w`, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`too many connections to database "%s"

Possible causes:
  - max_connections limit reached in postgresql.conf
  - Stale sessions from earlier runs

Original error: %w`, database, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *codetest.ConnectionConfig, logger codetest.Logger) (codetest.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *codetest.ConnectionConfig, logger codetest.Logger) (codetest.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", codetest.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-U): %w", codetest.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance, logger), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *codetest.ConnectionConfig, logger codetest.Logger) (codetest.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}
