package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mahdiidarabi/mprsa/pkg/rsakey"
)

// EnvPrefix is the prefix of environment overrides, e.g. RSADEMO_BITS.
const EnvPrefix = "rsademo"

// Config is the decoded demo configuration.
type Config struct {
	Bits             int    `mapstructure:"bits"`
	ExponentBits     int    `mapstructure:"exponent-bits"`
	Trials           int    `mapstructure:"trials"`
	Workers          int    `mapstructure:"workers"`
	MaxCandidates    int64  `mapstructure:"max-candidates"`
	ExponentAttempts int    `mapstructure:"exponent-attempts"`
	Input            string `mapstructure:"input"`
	Runs             int    `mapstructure:"runs"`
	Verbose          bool   `mapstructure:"verbose"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	def := rsakey.DefaultConfig()
	v.SetDefault("bits", def.Bits)
	v.SetDefault("exponent-bits", def.ExponentBits)
	v.SetDefault("trials", def.Trials)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("max-candidates", def.MaxCandidates)
	v.SetDefault("exponent-attempts", def.ExponentAttempts)
	v.SetDefault("input", "text.txt")
	v.SetDefault("runs", 30)
	v.SetDefault("verbose", false)
}

// New returns a viper instance with defaults and RSADEMO_* environment
// overrides wired up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile points v at cfgFile, or at $HOME/.config/rsademo/config.yaml
// when cfgFile is empty, and reads it. A missing default file is not an
// error; a missing explicit one is. It returns the file used, if any.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		v.AddConfigPath(filepath.Join(home, ".config", "rsademo"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings shared with key generation and the demo
// specific ones.
func (c *Config) Validate() error {
	if err := c.KeyConfig().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Runs < 1 {
		return fmt.Errorf("invalid config: runs must be at least 1, got %d", c.Runs)
	}
	if c.Input == "" {
		return fmt.Errorf("invalid config: input path is empty")
	}
	return nil
}

// KeyConfig returns the key generation part of c.
func (c *Config) KeyConfig() rsakey.Config {
	return rsakey.Config{
		Bits:             c.Bits,
		ExponentBits:     c.ExponentBits,
		Trials:           c.Trials,
		Workers:          c.Workers,
		MaxCandidates:    c.MaxCandidates,
		ExponentAttempts: c.ExponentAttempts,
	}
}
