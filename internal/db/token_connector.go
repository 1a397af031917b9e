package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/logging"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// tokenExpiryWarning is the remaining lifetime below which a token is reported.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token acquired from the TokenProvider becomes the session password.
type TokenBasedConnector struct {
	config        *codetest.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        codetest.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error and warning messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *codetest.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger codetest.Logger) *TokenBasedConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire %s token: %w", codetest.ErrConnectionFailed, c.providerName, err)
	}

	c.logger.Verbose("Acquired %s token from %s", c.providerName, c.tokenProvider)
	if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
		c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
	}

	configWithToken := *c.config
	configWithToken.Password = token

	connConfig, err := parseConnConfig(&configWithToken, c.logger)
	if err != nil {
		return nil, err
	}
	return connect(ctx, connConfig, c.config)
}
