// Package config resolves the runtime configuration of the CLI.
//
// Precedence, highest first: command-line flags, NOTES_* environment
// variables (a .env file in the working directory is loaded into the
// environment first), the optional config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/notes/pkg/web"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "NOTES"
	DefaultFile = "notes.json"
	DotEnvFile  = ".env"
)

// Log holds the logging settings.
type Log struct {
	Level string `mapstructure:"level"`
}

// Web holds the settings of the web view.
type Web struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	RateLimitRPS   int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst int    `mapstructure:"rate_limit_burst"`
}

// Config is the resolved configuration.
type Config struct {
	File string `mapstructure:"file"`
	Log  Log    `mapstructure:"log"`
	Web  Web    `mapstructure:"web"`
}

// flagKeys maps viper keys to the flag names that may override them.
var flagKeys = map[string]string{
	"file":     "file",
	"web.host": "host",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("file", DefaultFile)
	v.SetDefault("log.level", "info")
	v.SetDefault("web.host", web.DefaultHost)
	v.SetDefault("web.port", web.DefaultPort)
	v.SetDefault("web.rate_limit_rps", web.DefaultRateLimitRPS)
	v.SetDefault("web.rate_limit_burst", web.DefaultRateLimitBurst)
}

// Load reads the configuration. configFile may be empty; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimLeft(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("v.BindPFlag(%s): %w", key, err)
				}
			}
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("config: file must not be empty")
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("config: web.port %d out of range", c.Web.Port)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log.level: %w", err)
	}
	return level, nil
}
