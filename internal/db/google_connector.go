package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/logging"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// GoogleCloudSQLConnector implements the Connector interface for Google Cloud SQL
// using IAM database authentication via the Cloud SQL Go Connector.
//
// Implements io.Closer: the caller must call Close() after the connection is
// closed to release the Cloud SQL dialer.
type GoogleCloudSQLConnector struct {
	config   *codetest.ConnectionConfig
	instance string
	logger   codetest.Logger
	dialer   *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM authentication.
// instance is the instance connection name in format: project:region:instance
func NewGoogleCloudSQLConnector(config *codetest.ConnectionConfig, instance string, logger codetest.Logger) *GoogleCloudSQLConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
		logger:   logger,
	}
}

// Connect opens a session through the Cloud SQL dialer, which handles IAM
// authentication and TLS.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", codetest.ErrConnectionFailed, err)
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s dbname=%s sslmode=disable",
		c.instance,
		c.config.Username,
		c.config.Database,
	)
	if c.config.AppName != "" {
		dsn += " application_name=" + c.config.AppName
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %v: %w", err, codetest.ErrInvalidConfig)
	}

	connConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("%w: %w", codetest.ErrConnectionFailed,
			wrapConnectionError(err, c.instance, 0, c.config.Database))
	}

	c.logger.Verbose("Connected to Cloud SQL instance %s", c.instance)
	c.dialer = dialer
	return conn, nil
}

// Close releases the Cloud SQL dialer resources.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		err := c.dialer.Close()
		c.dialer = nil
		return err
	}
	return nil
}
