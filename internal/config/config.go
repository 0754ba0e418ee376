package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Session string        `mapstructure:"session"`
	Storage StorageConfig `mapstructure:"storage"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects where session history lives
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, memory
	Path   string `mapstructure:"path"`
}

// ScoringConfig selects the evaluator mode
type ScoringConfig struct {
	Mode  string `mapstructure:"mode"` // deterministic, perturbed, random
	Noise int    `mapstructure:"noise"`
	Seed  uint64 `mapstructure:"seed"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

const (
	dirName   = ".screener"
	fileName  = "config.yaml"
	envPrefix = "SCREENER"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// EditableKeys are the keys accepted by Set
var EditableKeys = []string{
	"session",
	"storage.driver",
	"storage.path",
	"scoring.mode",
	"scoring.noise",
	"scoring.seed",
	"log.json",
	"log.debug",
}

var AppConfig *Config

// Dir returns the directory holding the config file and database
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(homeDir, dirName)
}

// Initialize loads the configuration and validates it
func Initialize() error {
	if err := Load(); err != nil {
		return err
	}
	return AppConfig.Validate()
}

// Load reads or creates the configuration file without validating the
// values, so that a bad setting can still be inspected and replaced
func Load() error {
	configDir := Dir()
	configFile := filepath.Join(configDir, fileName)

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	// A .env in the working directory may override settings
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("session", "default")
	viper.SetDefault("storage.driver", DriverSQLite)
	viper.SetDefault("storage.path", filepath.Join(configDir, "screener.db"))
	viper.SetDefault("scoring.mode", "deterministic")
	viper.SetDefault("scoring.noise", 5)
	viper.SetDefault("scoring.seed", 0)
	viper.SetDefault("log.json", false)
	viper.SetDefault("log.debug", false)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("invalid storage.driver %q: must be %s or %s", c.Storage.Driver, DriverSQLite, DriverMemory)
	}
	switch c.Scoring.Mode {
	case "deterministic", "perturbed", "random":
	default:
		return fmt.Errorf("invalid scoring.mode %q", c.Scoring.Mode)
	}
	if c.Scoring.Noise < 0 {
		return fmt.Errorf("invalid scoring.noise %d: must not be negative", c.Scoring.Noise)
	}
	if strings.TrimSpace(c.Session) == "" {
		return fmt.Errorf("session must not be empty")
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Screener Configuration
# Session whose history commands read and write
session: default

# Storage driver: sqlite keeps history across commands, memory for one run only
storage:
  driver: sqlite

# Scoring mode: deterministic, perturbed (formula +/- noise), random
scoring:
  mode: deterministic
  noise: 5
  seed: 0

log:
  json: false
  debug: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	valid := false
	for _, k := range EditableKeys {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid key %q: must be one of %v", key, EditableKeys)
	}

	prev := viper.Get(key)
	viper.Set(key, value)

	// Nothing is written unless the whole configuration stays valid
	candidate := &Config{}
	err := viper.Unmarshal(candidate)
	if err == nil {
		err = candidate.Validate()
	}
	if err != nil {
		viper.Set(key, prev)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	return filepath.Join(Dir(), fileName)
}
