// Package config provides configuration loading and validation for the
// petstore service.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file values,
// e.g. PETSTORE_SERVER_ADDR.
const EnvPrefix = "PETSTORE"

// Config represents the petstore service configuration.
type Config struct {
	// Server contains HTTP listener configuration
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Info contains the API metadata written to the document
	Info InfoConfig `mapstructure:"info" yaml:"info" json:"info"`

	// Docs contains documentation endpoint configuration
	Docs DocsConfig `mapstructure:"docs" yaml:"docs" json:"docs"`

	// Log contains logging configuration
	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`
}

// ServerConfig contains HTTP listener configuration.
type ServerConfig struct {
	// Addr is the listen address
	Addr string `mapstructure:"addr" yaml:"addr" json:"addr" validate:"required,hostname_port"`

	// RequestIDHeader is the request ID header name
	RequestIDHeader string `mapstructure:"requestIdHeader" yaml:"requestIdHeader" json:"requestIdHeader"`

	// MaxBodyBytes limits the size of request bodies
	MaxBodyBytes int64 `mapstructure:"maxBodyBytes" yaml:"maxBodyBytes" json:"maxBodyBytes" validate:"gt=0"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	// Title is the API title
	Title string `mapstructure:"title" yaml:"title" json:"title" validate:"required"`

	// Description is the API description
	Description string `mapstructure:"description" yaml:"description" json:"description"`

	// Version is the API version
	Version string `mapstructure:"version" yaml:"version" json:"version" validate:"required"`
}

// DocsConfig contains documentation endpoint configuration.
type DocsConfig struct {
	// Path is the document endpoint
	Path string `mapstructure:"path" yaml:"path" json:"path" validate:"required,startswith=/"`

	// UIPath is the docs UI prefix, "-" disables the UI
	UIPath string `mapstructure:"uiPath" yaml:"uiPath" json:"uiPath" validate:"required"`

	// CORSOrigins are the origins allowed to fetch the document
	CORSOrigins []string `mapstructure:"corsOrigins" yaml:"corsOrigins" json:"corsOrigins" validate:"dive,required"`

	// Exclude lists route path globs left out of the document
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`

	// ArrayComponents registers pluralized array schemas
	ArrayComponents bool `mapstructure:"arrayComponents" yaml:"arrayComponents" json:"arrayComponents"`

	// InferPathParams documents undeclared path parameters
	InferPathParams bool `mapstructure:"inferPathParams" yaml:"inferPathParams" json:"inferPathParams"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level" json:"level" validate:"oneof=debug info warn error"`

	// Format is the output format (text, json)
	Format string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=text json"`
}

// SlogLevel returns the configured level as a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

var validate = validator.New()

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
		Server: ServerConfig{
			Addr:            ":8080",
			RequestIDHeader: "X-Request-ID",
			MaxBodyBytes:    1 << 20,
		},
		Info: InfoConfig{
			Title:       "Swagger Petstore",
			Description: "Test API on petstore",
			Version:     "1.0.0",
		},
		Docs: DocsConfig{
			Path:        "/swagger/yaml",
			UIPath:      "/swagger/ui/",
			CORSOrigins: []string{"https://editor.swagger.io"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration file at path (YAML, JSON or TOML by
// extension) on top of the defaults and applies PETSTORE_ environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := newViper(path)

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// Watch reloads the configuration file whenever it changes and passes the
// result to onChange. Invalid intermediate states are reported through
// onError and otherwise ignored. The returned config is the initial one.
func Watch(path string, onChange func(*Config), onError func(error)) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: watch requires a config file")
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(next)
	})
	v.WatchConfig()

	return cfg, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration and returns ValidationErrors listing
// every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Config."),
			Message: validationMessage(fe),
		})
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "startswith":
		return "must start with " + fe.Param()
	case "hostname_port":
		return "must be a host:port address"
	}
	return "failed on " + fe.Tag()
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.requestIdHeader", def.Server.RequestIDHeader)
	v.SetDefault("server.maxBodyBytes", def.Server.MaxBodyBytes)
	v.SetDefault("info.title", def.Info.Title)
	v.SetDefault("info.description", def.Info.Description)
	v.SetDefault("info.version", def.Info.Version)
	v.SetDefault("docs.path", def.Docs.Path)
	v.SetDefault("docs.uiPath", def.Docs.UIPath)
	v.SetDefault("docs.corsOrigins", def.Docs.CORSOrigins)
	v.SetDefault("docs.arrayComponents", false)
	v.SetDefault("docs.inferPathParams", false)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}
