package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// TokenProvider abstracts cloud token acquisition for database authentication.
// The token is used as the password of a single session.
type TokenProvider interface {
	// GetToken returns the token string and its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a description for logging. It must not include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// rdsTokenLifetime is how long an RDS IAM token stays valid.
const rdsTokenLifetime = 15 * time.Minute

// AWSIAMTokenProvider acquires IAM authentication tokens for RDS using the
// default AWS credential chain (environment, shared config, instance role).
type AWSIAMTokenProvider struct {
	endpoint string // host:port
	region   string
	username string

	once        sync.Once
	credentials aws.CredentialsProvider
	loadErr     error
}

// NewAWSIAMTokenProvider creates a token provider for AWS RDS IAM authentication.
func NewAWSIAMTokenProvider(endpoint, region, username string) (*AWSIAMTokenProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("AWS IAM auth requires endpoint (host:port): %w", codetest.ErrInvalidConfig)
	}
	if region == "" {
		return nil, fmt.Errorf("AWS IAM auth requires region (use --aws-region or $AWS_REGION): %w", codetest.ErrInvalidConfig)
	}
	if username == "" {
		return nil, fmt.Errorf("AWS IAM auth requires database username: %w", codetest.ErrInvalidConfig)
	}

	return &AWSIAMTokenProvider{
		endpoint: endpoint,
		region:   region,
		username: username,
	}, nil
}

func (p *AWSIAMTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	p.once.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(p.region))
		if err != nil {
			p.loadErr = fmt.Errorf("failed to load AWS config: %w", err)
			return
		}
		p.credentials = cfg.Credentials
	})
	if p.loadErr != nil {
		return "", time.Time{}, p.loadErr
	}

	token, err := auth.BuildAuthToken(ctx, p.endpoint, p.region, p.username, p.credentials)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build RDS auth token: %w", err)
	}

	return token, time.Now().Add(rdsTokenLifetime), nil
}

func (p *AWSIAMTokenProvider) String() string {
	return fmt.Sprintf("AWSIAMTokenProvider(endpoint=%s, region=%s, user=%s)", p.endpoint, p.region, p.username)
}

// AzureTokenProvider acquires Entra ID tokens from an azcore credential.
type AzureTokenProvider struct {
	credential  azcore.TokenCredential
	description string
}

// NewAzureServicePrincipalProvider uses Service Principal credentials.
// All three parameters are required.
func NewAzureServicePrincipalProvider(tenantID, clientID, clientSecret string) (*AzureTokenProvider, error) {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("azure service principal requires tenantID, clientID, and clientSecret: %w", codetest.ErrInvalidConfig)
	}

	cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	return &AzureTokenProvider{
		credential:  cred,
		description: fmt.Sprintf("AzureServicePrincipal(tenant=%s, client=%s)", tenantID, clientID),
	}, nil
}

// NewAzureDefaultCredentialProvider uses the DefaultAzureCredential chain:
// environment, workload identity, managed identity, then developer CLIs.
func NewAzureDefaultCredentialProvider() (*AzureTokenProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure default credential: %w", err)
	}

	return &AzureTokenProvider{
		credential:  cred,
		description: "AzureDefaultCredential",
	}, nil
}

func (p *AzureTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	token, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{AzurePostgreSQLScope},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("azure token acquisition failed: %w", err)
	}
	return token.Token, token.ExpiresOn, nil
}

func (p *AzureTokenProvider) String() string {
	return p.description
}
