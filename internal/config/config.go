// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for webapi2swagger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the webapi2swagger configuration.
type Config struct {
	// Assembly is the path of the compiled module to inspect
	Assembly string `mapstructure:"assembly" yaml:"assembly" json:"assembly"`

	// Output is the output file path for the generated Swagger document
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (json, yaml)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Swagger contains document-level configuration
	Swagger SwaggerConfig `mapstructure:"swagger" yaml:"swagger" json:"swagger"`

	// Generation contains generation behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// SwaggerConfig contains Swagger document configuration.
type SwaggerConfig struct {
	// Info contains API metadata
	Info InfoConfig `mapstructure:"info" yaml:"info" json:"info"`

	// Host is the host (name or ip) serving the API
	Host string `mapstructure:"host" yaml:"host,omitempty" json:"host,omitempty"`

	// BasePath is the path the API is served under
	BasePath string `mapstructure:"basePath" yaml:"basePath,omitempty" json:"basePath,omitempty"`

	// Schemes is the list of transfer protocols (http, https, ws, wss)
	Schemes []string `mapstructure:"schemes" yaml:"schemes,omitempty" json:"schemes,omitempty"`

	// Consumes is the list of MIME types the API consumes
	Consumes []string `mapstructure:"consumes" yaml:"consumes,omitempty" json:"consumes,omitempty"`

	// Produces is the list of MIME types the API produces
	Produces []string `mapstructure:"produces" yaml:"produces,omitempty" json:"produces,omitempty"`

	// Tags is a list of tag configurations
	Tags []TagConfig `mapstructure:"tags" yaml:"tags,omitempty" json:"tags,omitempty"`

	// Security contains security scheme configurations
	Security SecurityConfig `mapstructure:"security" yaml:"security,omitempty" json:"security,omitempty"`

	// Extensions are x- vendor extensions added to the document root
	Extensions map[string]any `mapstructure:"extensions" yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	// Title is the API title (defaults to the module name)
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Description is the API description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`

	// Version is the API version
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// TermsOfService is the URL to terms of service
	TermsOfService string `mapstructure:"termsOfService" yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`

	// Contact contains contact information
	Contact ContactConfig `mapstructure:"contact" yaml:"contact,omitempty" json:"contact,omitempty"`

	// License contains license information
	License LicenseConfig `mapstructure:"license" yaml:"license,omitempty" json:"license,omitempty"`
}

// ContactConfig contains contact information.
type ContactConfig struct {
	// Name is the contact name
	Name string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`

	// URL is the contact URL
	URL string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`

	// Email is the contact email
	Email string `mapstructure:"email" yaml:"email,omitempty" json:"email,omitempty"`
}

// LicenseConfig contains license information.
type LicenseConfig struct {
	// Name is the license name
	Name string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`

	// URL is the license URL
	URL string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`
}

// TagConfig contains tag configuration.
type TagConfig struct {
	// Name is the tag name
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	// Description is the tag description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
}

// SecurityConfig contains security configuration.
type SecurityConfig struct {
	// Schemes is a map of security scheme configurations
	Schemes map[string]SecuritySchemeConfig `mapstructure:"schemes" yaml:"schemes,omitempty" json:"schemes,omitempty"`

	// Default is a list of default security requirements
	Default []string `mapstructure:"default" yaml:"default,omitempty" json:"default,omitempty"`
}

// SecuritySchemeConfig contains a Swagger 2.0 security scheme.
type SecuritySchemeConfig struct {
	// Type is the security scheme type (basic, apiKey, oauth2)
	Type string `mapstructure:"type" yaml:"type" json:"type"`

	// Name is the name of the header or query parameter (apiKey)
	Name string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`

	// In is the location of the API key (header, query)
	In string `mapstructure:"in" yaml:"in,omitempty" json:"in,omitempty"`

	// Flow is the OAuth2 flow (implicit, password, application, accessCode)
	Flow string `mapstructure:"flow" yaml:"flow,omitempty" json:"flow,omitempty"`

	// AuthorizationURL is the OAuth2 authorization URL
	AuthorizationURL string `mapstructure:"authorizationUrl" yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`

	// TokenURL is the OAuth2 token URL
	TokenURL string `mapstructure:"tokenUrl" yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`

	// Scopes maps OAuth2 scope names to descriptions
	Scopes map[string]string `mapstructure:"scopes" yaml:"scopes,omitempty" json:"scopes,omitempty"`

	// Description is a description of the security scheme
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
}

// GenerationConfig contains generation behavior configuration.
type GenerationConfig struct {
	// Validate checks the generated document against the Swagger 2.0 schema
	Validate bool `mapstructure:"validate" yaml:"validate" json:"validate"`

	// Merge determines whether to merge with an existing output file
	Merge bool `mapstructure:"merge" yaml:"merge" json:"merge"`

	// Dependencies are glob patterns selecting sibling modules to preload
	Dependencies []string `mapstructure:"dependencies" yaml:"dependencies" json:"dependencies"`

	// Isolation is how modules are loaded (process, none)
	Isolation string `mapstructure:"isolation" yaml:"isolation" json:"isolation"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// Isolation modes.
const (
	IsolationProcess = "process"
	IsolationNone    = "none"
)

// DefaultVersion is the API version used when none is configured.
const DefaultVersion = "v1"

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"webapi2swagger.yaml",
	"webapi2swagger.json",
	".webapi2swagger.yaml",
	".webapi2swagger.json",
}

// ConfigFileName is the file name written by the init command.
const ConfigFileName = "webapi2swagger.yaml"

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"json",
	"yaml",
}

// supportedIsolation is the list of supported isolation modes.
var supportedIsolation = []string{
	IsolationProcess,
	IsolationNone,
}

// supportedSchemes is the list of transfer protocols Swagger 2.0 allows.
var supportedSchemes = []string{
	"http",
	"https",
	"ws",
	"wss",
}

// supportedSecurityTypes is the list of Swagger 2.0 security scheme types.
var supportedSecurityTypes = []string{
	"basic",
	"apiKey",
	"oauth2",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Format: "json",
		Swagger: SwaggerConfig{
			Info: InfoConfig{
				Version: DefaultVersion,
			},
		},
		Generation: GenerationConfig{
			Dependencies: []string{"*.so"},
			Isolation:    IsolationProcess,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches the working directory for, in order, webapi2swagger.yaml,
// webapi2swagger.json, .webapi2swagger.yaml and .webapi2swagger.json.
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "json")
	v.SetDefault("swagger.info.version", DefaultVersion)
	v.SetDefault("generation.validate", false)
	v.SetDefault("generation.merge", false)
	v.SetDefault("generation.dependencies", []string{"*.so"})
	v.SetDefault("generation.isolation", IsolationProcess)
	v.SetDefault("watch.debounce", 500)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Generation.Isolation != "" && !contains(supportedIsolation, c.Generation.Isolation) {
		errs = append(errs, ValidationError{
			Field:   "generation.isolation",
			Message: fmt.Sprintf("unsupported isolation %q, must be one of: %s", c.Generation.Isolation, strings.Join(supportedIsolation, ", ")),
		})
	}

	for _, scheme := range c.Swagger.Schemes {
		if !contains(supportedSchemes, scheme) {
			errs = append(errs, ValidationError{
				Field:   "swagger.schemes",
				Message: fmt.Sprintf("unsupported scheme %q, must be one of: %s", scheme, strings.Join(supportedSchemes, ", ")),
			})
		}
	}

	if c.Swagger.BasePath != "" && !strings.HasPrefix(c.Swagger.BasePath, "/") {
		errs = append(errs, ValidationError{
			Field:   "swagger.basePath",
			Message: "basePath must start with /",
		})
	}

	for name, scheme := range c.Swagger.Security.Schemes {
		if !contains(supportedSecurityTypes, scheme.Type) {
			errs = append(errs, ValidationError{
				Field:   "swagger.security.schemes." + name,
				Message: fmt.Sprintf("unsupported type %q, must be one of: %s", scheme.Type, strings.Join(supportedSecurityTypes, ", ")),
			})
		}
	}

	for _, name := range c.Swagger.Security.Default {
		if _, ok := c.Swagger.Security.Schemes[name]; !ok {
			errs = append(errs, ValidationError{
				Field:   "swagger.security.default",
				Message: fmt.Sprintf("undefined security scheme %q", name),
			})
		}
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the path of the config file in the working directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
