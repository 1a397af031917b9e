package codetest_test

import (
	"errors"
	"testing"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

func TestLoadConfig_Validate(t *testing.T) {
	conn := &codetest.ConnectionConfig{Host: "localhost", Port: 5432, Database: "codetest"}

	tests := []struct {
		name      string
		config    codetest.LoadConfig
		wantError bool
	}{
		{
			name: "valid config",
			config: codetest.LoadConfig{
				PlacesPath: "data/places.csv",
				PeoplePath: "data/people.csv",
				Delimiter:  ',',
				Connection: conn,
			},
		},
		{
			name: "semicolon delimiter",
			config: codetest.LoadConfig{
				PlacesPath: "p.csv",
				PeoplePath: "q.csv",
				Delimiter:  ';',
				Connection: conn,
			},
		},
		{
			name:      "missing places path",
			config:    codetest.LoadConfig{PeoplePath: "q.csv", Delimiter: ',', Connection: conn},
			wantError: true,
		},
		{
			name:      "missing people path",
			config:    codetest.LoadConfig{PlacesPath: "p.csv", Delimiter: ',', Connection: conn},
			wantError: true,
		},
		{
			name:      "zero delimiter",
			config:    codetest.LoadConfig{PlacesPath: "p.csv", PeoplePath: "q.csv", Connection: conn},
			wantError: true,
		},
		{
			name:      "quote delimiter",
			config:    codetest.LoadConfig{PlacesPath: "p.csv", PeoplePath: "q.csv", Delimiter: '"', Connection: conn},
			wantError: true,
		},
		{
			name:      "missing connection",
			config:    codetest.LoadConfig{PlacesPath: "p.csv", PeoplePath: "q.csv", Delimiter: ','},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !errors.Is(err, codetest.ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_Validate_JoinsAllProblems(t *testing.T) {
	cfg := codetest.LoadConfig{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error for empty config")
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("Expected joined error, got %T", err)
	}
	if got := len(joined.Unwrap()); got != 4 {
		t.Errorf("Expected 4 problems, got %d: %v", got, err)
	}
}

func TestReportConfig_Validate(t *testing.T) {
	ok := codetest.ReportConfig{OutputPath: "out.json", Connection: &codetest.ConnectionConfig{}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	missing := codetest.ReportConfig{}
	if err := missing.Validate(); !errors.Is(err, codetest.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    codetest.AuthMethod
		wantErr bool
	}{
		{"", codetest.AuthMethodStandard, false},
		{"standard", codetest.AuthMethodStandard, false},
		{"aws", codetest.AuthMethodAWSIAM, false},
		{"google", codetest.AuthMethodGoogleIAM, false},
		{"azure", codetest.AuthMethodAzureEntraID, false},
		{"kerberos", codetest.AuthMethodStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := codetest.ParseAuthMethod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, codetest.ErrUnsupportedAuthMethod) {
					t.Errorf("Expected ErrUnsupportedAuthMethod, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAuthMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAuthMethod_String(t *testing.T) {
	if got := codetest.AuthMethodAWSIAM.String(); got != "AWS IAM" {
		t.Errorf("got %q", got)
	}
	if got := codetest.AuthMethod(42).String(); got != "Unknown(42)" {
		t.Errorf("got %q", got)
	}
}
