// Package config loads the settings of the typescriptify command.
//
// Settings are resolved from, in increasing precedence: built-in defaults,
// the nearest .typescriptify.yaml walking up from the working directory,
// and TYPESCRIPTIFY_* environment variables. Command line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/lucasefe/typescriptify/generator"
	"github.com/lucasefe/typescriptify/introspect"
	"github.com/lucasefe/typescriptify/relation"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "TYPESCRIPTIFY_"

// DefaultConfigNames are the filenames FindConfig searches for.
var DefaultConfigNames = []string{".typescriptify.yaml", ".typescriptify.yml"}

// ErrConfigNotFound is returned when no config file exists in the
// directory or any of its parents.
var ErrConfigNotFound = errors.New("config: no config file found")

// Config holds the command settings.
type Config struct {
	// DSN is the MySQL connection string.
	DSN string `yaml:"dsn" env:"DSN"`
	// ModelsDir is the directory holding model YAML files.
	ModelsDir string `yaml:"models" env:"MODELS_DIR"`
	// Snapshot is a schema snapshot file used instead of a live connection.
	Snapshot string `yaml:"snapshot" env:"SNAPSHOT"`
	// Output is the file generated interfaces are written to. Empty means stdout.
	Output string `yaml:"output" env:"OUTPUT"`
	// CaseStyle is the property name case style.
	CaseStyle string `yaml:"case" env:"CASE"`
	// IncludeHidden includes hidden model attributes.
	IncludeHidden bool `yaml:"include_hidden" env:"INCLUDE_HIDDEN"`
	// IncludeRelations generates nested interfaces for foreign keys.
	IncludeRelations bool `yaml:"include_relations" env:"INCLUDE_RELATIONS"`
	// ExcludeTables are tables introspection ignores.
	ExcludeTables []string `yaml:"exclude_tables" env:"EXCLUDE_TABLES"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// Concurrency bounds how many models are generated at once.
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`
	// TypeMappings maps raw column type prefixes to TypeScript types.
	TypeMappings map[string]string `yaml:"type_mappings" env:"TYPE_MAPPINGS"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ModelsDir:   "models",
		CaseStyle:   string(relation.CaseDefault),
		LogLevel:    "info",
		Concurrency: 4,
	}
}

// Load resolves the settings for a command run from dir.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path, err := FindConfig(dir)
	switch {
	case err == nil:
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	case !errors.Is(err, ErrConfigNotFound):
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadFile reads the config file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Relative paths in the file are relative to the file.
	base := filepath.Dir(path)
	for _, p := range []*string{&c.ModelsDir, &c.Snapshot, &c.Output} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return nil
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// Validate checks the settings for common errors.
func (c *Config) Validate() error {
	if _, err := relation.ParseCaseStyle(c.CaseStyle); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid configuration: log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid configuration: concurrency must be positive, got %d", c.Concurrency)
	}
	if c.DSN != "" && c.Snapshot == "" {
		if _, err := introspect.ParseDSN(c.DSN); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// Level returns the configured log level. Invalid levels fall back to info.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Case returns the configured case style. Invalid styles fall back to the
// default style.
func (c *Config) Case() relation.CaseStyle {
	style, err := relation.ParseCaseStyle(c.CaseStyle)
	if err != nil {
		return relation.CaseDefault
	}
	return style
}

// GeneratorOptions translates the settings into generator options.
func (c *Config) GeneratorOptions(logger *zap.Logger) []generator.Option {
	opts := []generator.Option{
		generator.WithIncludeHidden(c.IncludeHidden),
		generator.WithIncludeRelations(c.IncludeRelations),
		generator.WithCaseStyle(c.Case()),
		generator.WithConcurrency(c.Concurrency),
		generator.WithLogger(logger),
	}
	if len(c.TypeMappings) > 0 {
		opts = append(opts, generator.WithTypeMappings(c.TypeMappings))
	}
	return opts
}

// IntrospectOptions translates the settings into introspection options.
func (c *Config) IntrospectOptions(logger *zap.Logger) []introspect.Option {
	opts := []introspect.Option{introspect.WithLogger(logger)}
	if len(c.ExcludeTables) > 0 {
		opts = append(opts, introspect.WithExcludeTables(c.ExcludeTables...))
	}
	if c.DSN != "" {
		if cfg, err := introspect.ParseDSN(c.DSN); err == nil && cfg.DBName != "" {
			opts = append(opts, introspect.WithDatabase(cfg.DBName))
		}
	}
	return opts
}
