package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Config holds the settings of the default PostgREST client.
type Config struct {
	URL      string            `mapstructure:"url"`
	Schema   string            `mapstructure:"schema"`
	APIKey   string            `mapstructure:"apiKey"`
	Headers  map[string]string `mapstructure:"headers"`
	Timeout  time.Duration     `mapstructure:"timeout"`
	Retry    RetryConfig       `mapstructure:"retry"`
	LogLevel string            `mapstructure:"logLevel"`
}

type RetryConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"maxRetries"`
	InitialBackoff time.Duration `mapstructure:"initialBackoff"`
	MaxBackoff     time.Duration `mapstructure:"maxBackoff"`
}

func Default() Config {
	return Config{
		URL:      "http://localhost:3000",
		Timeout:  30 * time.Second,
		LogLevel: "info",
		Retry: RetryConfig{
			MaxRetries:     3,
			InitialBackoff: 100 * time.Millisecond,
			MaxBackoff:     10 * time.Second,
		},
	}
}

// Load reads config from cfgFile, or pgrest.yaml in $HOME/.config or the
// working directory, then applies PGREST_* environment variables. A .env
// file in the working directory is loaded into the environment first.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pgrest")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PGREST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("url", d.URL)
	v.SetDefault("schema", d.Schema)
	v.SetDefault("apiKey", d.APIKey)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("retry.enabled", d.Retry.Enabled)
	v.SetDefault("retry.maxRetries", d.Retry.MaxRetries)
	v.SetDefault("retry.initialBackoff", d.Retry.InitialBackoff)
	v.SetDefault("retry.maxBackoff", d.Retry.MaxBackoff)
}
