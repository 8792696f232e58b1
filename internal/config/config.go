// Package config loads the accounts-generator settings from an optional
// YAML file and ACCOUNTS_GENERATOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"accounts-generator/internal/gen"
)

// Name is the config file base name, searched as accounts-generator.yaml.
const Name = "accounts-generator"

// EnvPrefix prefixes environment overrides, e.g. ACCOUNTS_GENERATOR_OUTPUT_DIR.
const EnvPrefix = "ACCOUNTS_GENERATOR"

// Config represents the generator configuration.
type Config struct {
	OutputDir string         `mapstructure:"output_dir"`
	Features  FeaturesConfig `mapstructure:"features"`
	Log       LogConfig      `mapstructure:"log"`
}

// FeaturesConfig selects the optional helper modules.
type FeaturesConfig struct {
	ClientHelpers bool `mapstructure:"client_helpers"`
	CpiHelpers    bool `mapstructure:"cpi_helpers"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads accounts-generator.yaml from dir if present. A missing file is not
// an error; defaults and environment overrides still apply.
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(Name)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile reads the config file at path, which must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("output_dir", "generated")
	v.SetDefault("features.client_helpers", true)
	v.SetDefault("features.cpi_helpers", true)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return errors.New("output_dir must not be empty")
	}

	if _, err := cfg.Level(); err != nil {
		return err
	}

	return nil
}

// Flags returns the generation flags selected by the config.
func (c *Config) Flags() gen.Flags {
	return gen.Flags{
		GenerateClientHelpers: c.Features.ClientHelpers,
		GenerateCpiHelpers:    c.Features.CpiHelpers,
	}
}

// Level parses the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}

	return lvl, nil
}

// NewLogger builds the CLI logger. Verbose selects the development encoder at
// debug level; otherwise a production logger at the configured level is used.
func (c *Config) NewLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		zc := zap.NewProductionConfig()

		lvl, lerr := c.Level()
		if lerr == nil {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}

		logger, err = zc.Build()
	}

	if err != nil {
		return zap.NewNop()
	}

	return logger
}
