package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/homedir"
)

const (
	// DefaultBaseURL is the address of a locally running tasks API.
	DefaultBaseURL = "http://127.0.0.1:5000"

	envPrefix = "TASKPAD_"
)

// Config holds the resolved application configuration
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	LogDir    string
	LogFormat string
	Debug     bool
}

// Settings represents the config file structure
type Settings struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
	LogDir    string `yaml:"log_dir,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
	Debug     bool   `yaml:"debug,omitempty"`
}

// CLIFlags holds parsed CLI flags. Zero values mean "not set", except for
// Timeout where nil means not set and zero disables the timeout.
type CLIFlags struct {
	ConfigPath string
	BaseURL    string
	Timeout    *time.Duration
	LogDir     string
	LogFormat  string
	Debug      bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		BaseURL:   DefaultBaseURL,
		LogDir:    GetDefaultDir(),
		LogFormat: "text",
	}

	// Config file first for base values. A missing file is not an error.
	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = GetConfigPath()
	}
	fileConfig, err := loadConfigFile(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load config file %s: %w", configPath, err)
	}
	if fileConfig != nil {
		if err := cfg.apply(*fileConfig); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	// Priority 2: Environment variables override config file
	if err := cfg.apply(Settings{
		BaseURL:   os.Getenv(envPrefix + "BASE_URL"),
		Timeout:   os.Getenv(envPrefix + "TIMEOUT"),
		LogDir:    os.Getenv(envPrefix + "LOG_DIR"),
		LogFormat: os.Getenv(envPrefix + "LOG_FORMAT"),
		Debug:     parseBool(os.Getenv(envPrefix + "DEBUG")),
	}); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	// Priority 1: CLI flags override everything
	if flags.BaseURL != "" {
		cfg.BaseURL = flags.BaseURL
	}
	if flags.Timeout != nil {
		cfg.Timeout = *flags.Timeout
	}
	if flags.LogDir != "" {
		cfg.LogDir = expandPath(flags.LogDir)
	}
	if flags.LogFormat != "" {
		cfg.LogFormat = flags.LogFormat
	}
	if flags.Debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) apply(s Settings) error {
	if s.BaseURL != "" {
		c.BaseURL = s.BaseURL
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
		}
		c.Timeout = d
	}
	if s.LogDir != "" {
		c.LogDir = expandPath(s.LogDir)
	}
	if s.LogFormat != "" {
		c.LogFormat = s.LogFormat
	}
	if s.Debug {
		c.Debug = true
	}
	return nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base url is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (must be: text, json)", c.LogFormat)
	}
	return nil
}

// GetDefaultDir returns the default directory for taskpad's own files
func GetDefaultDir() string {
	return filepath.Join(homedir.HomeDir(), ".taskpad")
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() string {
	return filepath.Join(homedir.HomeDir(), ".config", "taskpad", "config.yaml")
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile(path string) error {
	if path == "" {
		path = GetConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	settings := Settings{
		BaseURL:   DefaultBaseURL,
		LogFormat: "text",
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homedir.HomeDir(), path[2:])
	}
	return path
}
