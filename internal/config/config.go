// Package config loads the optional codetest.yaml project file and the
// CODETEST_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	SSLCert        string `yaml:"sslcert,omitempty"`
	SSLKey         string `yaml:"sslkey,omitempty"`
	SSLRootCert    string `yaml:"sslrootcert,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty" validate:"omitempty,oneof=standard aws azure google"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

type InputConfig struct {
	Places    string `yaml:"places"`
	People    string `yaml:"people"`
	Delimiter string `yaml:"delimiter" validate:"omitempty,len=1"`
}

type OutputConfig struct {
	Summary string `yaml:"summary"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
}

const ConfigFileName = "codetest.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates the project file at path. Unknown keys are
// rejected so a misspelt setting does not fall back to its default.
func LoadFile(path string) (*ProjectConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cfg ProjectConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, codetest.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks ranges and enumerations. Empty fields are always valid;
// they defer to the next source in precedence order.
func (c *ProjectConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%v: %w", err, codetest.ErrInvalidConfig)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: %s: %w", fieldPath(fe), describe(fe), codetest.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// fieldPath drops the root struct name: "ProjectConfig.connection.port" -> "connection.port".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Namespace()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%v is not one of [%s]", fe.Value(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%v is out of range", fe.Value())
	case "len":
		return fmt.Sprintf("%q must be a single character", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// DelimiterRune returns the configured delimiter, or 0 when unset.
func (i InputConfig) DelimiterRune() rune {
	for _, r := range i.Delimiter {
		return r
	}
	return 0
}
