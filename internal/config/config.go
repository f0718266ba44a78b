package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix prefixes environment overrides (PACEMAN_REQUEST_TIMEOUT, ...)
	EnvPrefix = "PACEMAN"

	// DefaultUpdateURL is queried by `paceman version --check`
	DefaultUpdateURL = "https://api.github.com/repos/studiowebux/paceman/releases/latest"
)

var (
	// ConfigDir is the global configuration directory (~/.paceman)
	ConfigDir string

	// ConfigFile is the default config file location
	ConfigFile string

	// LogDir holds the log file
	LogDir string
)

// Config is the application configuration
type Config struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	StateDB        string        `mapstructure:"state_db"`
	SessionFile    string        `mapstructure:"session_file"`
	PersistTabs    bool          `mapstructure:"persist_tabs"`
	Highlight      bool          `mapstructure:"highlight"`
	KeybindsFile   string        `mapstructure:"keybinds_file"`
	RecordHistory  bool          `mapstructure:"record_history"`
	UpdateURL      string        `mapstructure:"update_url"`
}

// Options controls where configuration is read from
type Options struct {
	ConfigFile string // explicit config file; empty means ~/.paceman/config.yaml if present
	EnvFile    string // dotenv file loaded before reading the environment
	Version    string // used in the default user agent
}

// Initialize sets up the configuration directories
// It creates ~/.paceman/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".paceman"))
}

// InitializeAt sets the global paths under dir and creates the directories
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	LogDir = filepath.Join(ConfigDir, "logs")

	// Create directories if they don't exist
	for _, d := range []string{ConfigDir, LogDir} {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	return nil
}

// Load reads defaults, the config file and the environment, in that order of precedence
func Load(opts Options) (*Config, error) {
	if ConfigDir == "" {
		return nil, errors.New("config directory not initialized")
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")

	version := opts.Version
	if version == "" {
		version = "dev"
	}

	v.SetDefault("request_timeout", "30s")
	v.SetDefault("user_agent", "paceman/"+version)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(LogDir, "paceman.log"))
	v.SetDefault("state_db", filepath.Join(ConfigDir, "paceman.db"))
	v.SetDefault("session_file", filepath.Join(ConfigDir, "session.json"))
	v.SetDefault("persist_tabs", true)
	v.SetDefault("highlight", true)
	v.SetDefault("keybinds_file", filepath.Join(ConfigDir, "keybinds.json"))
	v.SetDefault("record_history", true)
	v.SetDefault("update_url", DefaultUpdateURL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = ConfigFile
	}

	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s not found: %w", configFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that viper cannot check on its own
func (c *Config) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	if c.StateDB == "" {
		return errors.New("state_db is required")
	}

	if c.SessionFile == "" {
		return errors.New("session_file is required")
	}

	return nil
}
