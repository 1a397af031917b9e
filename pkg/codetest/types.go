package codetest

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Place is one row of the places table. City is the natural join key
// and carries no uniqueness guarantee.
type Place struct {
	City    string
	County  string
	Country string
}

// Person is one row of the people table.
//
// DateOfBirth is kept exactly as it appears in the source file; the store's
// column type is the only thing that interprets it. PlaceOfBirth is a city
// name, matched against Place.City by exact equality when reporting.
type Person struct {
	GivenName    string
	FamilyName   string
	DateOfBirth  string
	PlaceOfBirth string
}

// CountryCount is one entry of the summary report.
type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// PlacesPath is the places file, loaded and committed first
	PlacesPath string

	// PeoplePath is the people file, loaded after places are committed
	PeoplePath string

	// Delimiter separates fields in both files
	Delimiter rune

	// Connection addresses the target database
	Connection *ConnectionConfig
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.PlacesPath == "" {
		errs = append(errs, fmt.Errorf("PlacesPath is required: %w", ErrInvalidConfig))
	}

	if c.PeoplePath == "" {
		errs = append(errs, fmt.Errorf("PeoplePath is required: %w", ErrInvalidConfig))
	}

	if !validDelimiter(c.Delimiter) {
		errs = append(errs, fmt.Errorf("delimiter %q cannot separate fields: %w", c.Delimiter, ErrInvalidConfig))
	}

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}

// LoadResult reports how many rows each table received, and the SHA-256 of
// each file that was committed.
type LoadResult struct {
	Places int
	People int

	PlacesSHA256 string
	PeopleSHA256 string
}

// ReportConfig contains all parameters needed for a summary run.
type ReportConfig struct {
	// OutputPath is the JSON file to (over)write
	OutputPath string

	// Connection addresses the source database
	Connection *ConnectionConfig
}

// Validate checks if the ReportConfig has all required fields.
func (c *ReportConfig) Validate() error {
	var errs []error

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance)
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// ParseAuthMethod maps the configuration spelling of an auth method.
// The empty string means AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws":
		return AuthMethodAWSIAM, nil
	case "google":
		return AuthMethodGoogleIAM, nil
	case "azure":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}
