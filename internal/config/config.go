// Package config resolves the CLI's settings from flags, environment,
// an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/todo/internal/store/jsonstore"
)

const (
	// AppName is the configuration directory name.
	AppName = "todo"

	// ConfigFileName is looked up inside the configuration directory.
	ConfigFileName = "config.yaml"

	// EnvPrefix prefixes every environment variable the CLI reads.
	EnvPrefix = "TODO"
)

// Keys understood by Load.
const (
	KeyFile     = "file"
	KeyOwner    = "owner"
	KeyTheme    = "theme"
	KeyLogLevel = "log_level"
	KeyDebug    = "debug"
)

// ErrConfig marks every configuration error.
var ErrConfig = errors.New("configuration error")

// Config holds the resolved settings.
type Config struct {
	// File is the task list's backing file.
	File string `yaml:"file"`

	// Owner names the user a new list is created for. Empty is allowed
	// until a new list actually has to be created.
	Owner string `yaml:"owner"`

	Theme    string `yaml:"theme"`
	LogLevel string `yaml:"log_level"`

	// Source is the config file that was read, if any.
	Source string `yaml:"-"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		File:     jsonstore.DefaultFile,
		Theme:    "classic",
		LogLevel: "warn",
	}
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile overrides the default config file location.
	ConfigFile string

	// DotEnv is the .env file to read. Empty means ".env" in the working
	// directory. Variables already set in the environment win.
	DotEnv string

	// Flags, when set, are bound to the keys of the same name.
	Flags *pflag.FlagSet
}

// Load resolves the configuration. Precedence, highest first: flags,
// environment, .env, config file, defaults.
func Load(opts Options) (*Config, error) {
	if err := loadDotEnv(opts.DotEnv); err != nil {
		return nil, err
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyFile, d.File)
	v.SetDefault(KeyTheme, d.Theme)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// Owner falls back to the login name of the current user.
	if err := v.BindEnv(KeyOwner, EnvPrefix+"_OWNER", "USER"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if opts.Flags != nil {
		for _, key := range []string{KeyFile, KeyOwner, KeyTheme, KeyLogLevel} {
			if f := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrConfig, err)
				}
			}
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		File:     strings.TrimSpace(v.GetString(KeyFile)),
		Owner:    strings.TrimSpace(v.GetString(KeyOwner)),
		Theme:    strings.ToLower(strings.TrimSpace(v.GetString(KeyTheme))),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Source:   v.ConfigFileUsed(),
	}
	if opts.Flags != nil {
		if debug, err := opts.Flags.GetBool(KeyDebug); err == nil && debug {
			cfg.LogLevel = "debug"
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrConfig, KeyFile)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("%w: unknown theme %q (want classic, neon or mono)", ErrConfig, c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrConfig, c.LogLevel)
	}
	return nil
}

// YAML renders the configuration in config-file form.
func (c *Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return b, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
		}
		return nil
	}

	v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultConfigDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: read config: %w", ErrConfig, err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/todo, or ~/.config/todo.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}
