package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// JournalConfig represents batch journal configuration
type JournalConfig struct {
	// Enabled enables journaling of batch reports to SQLite
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the journal database
	DBPath string `yaml:"db_path"`

	// KeepDays is the number of days to keep journaled batches (0 = forever)
	KeepDays int `yaml:"keep_days"`
}

// Config represents curator configuration options
type Config struct {
	// IntakeDir is the directory client deliveries land in
	IntakeDir string `yaml:"intake_dir"`

	// StoreDir is the root of the hierarchical file store
	StoreDir string `yaml:"store_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	// Verify selects the copy verification mode ("size" or "digest")
	Verify string `yaml:"verify"`

	// Lock guards the intake directory against concurrent runs
	Lock bool `yaml:"lock"`

	// Journal contains batch journal configuration
	Journal JournalConfig `yaml:"journal"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		IntakeDir: "intake",
		StoreDir:  "store",
		LogLevel:  "info",
		LogDir:    ".curator/logs",
		Verify:    "size",
		Lock:      true,
		Journal: JournalConfig{
			Enabled:  true,
			DBPath:   ".curator/journal.db",
			KeepDays: 90,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	type yamlConfig struct {
		IntakeDir string        `yaml:"intake_dir"`
		StoreDir  string        `yaml:"store_dir"`
		LogLevel  string        `yaml:"log_level"`
		LogDir    string        `yaml:"log_dir"`
		Verify    string        `yaml:"verify"`
		Lock      bool          `yaml:"lock"`
		Journal   JournalConfig `yaml:"journal"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-empty values from file (merging with defaults)
	if yamlCfg.IntakeDir != "" {
		cfg.IntakeDir = yamlCfg.IntakeDir
	}
	if yamlCfg.StoreDir != "" {
		cfg.StoreDir = yamlCfg.StoreDir
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Verify != "" {
		cfg.Verify = yamlCfg.Verify
	}

	// Lock and the journal section default to on, so "false" in the file
	// is meaningful. Re-unmarshal into a raw map to detect which keys were
	// actually present.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["lock"]; exists {
			cfg.Lock = yamlCfg.Lock
		}

		if journalSection, exists := rawMap["journal"]; exists && journalSection != nil {
			journal := yamlCfg.Journal
			journalMap, _ := journalSection.(map[string]interface{})

			if _, exists := journalMap["enabled"]; exists {
				cfg.Journal.Enabled = journal.Enabled
			}
			if _, exists := journalMap["db_path"]; exists {
				// Explicitly set db_path, even if empty string
				cfg.Journal.DBPath = journal.DBPath
			}
			if _, exists := journalMap["keep_days"]; exists {
				cfg.Journal.KeepDays = journal.KeepDays
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .curator/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".curator", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(intakeDir *string, storeDir *string, logDir *string, verify *string, lock *bool, journalEnabled *bool) {
	if intakeDir != nil {
		c.IntakeDir = *intakeDir
	}
	if storeDir != nil {
		c.StoreDir = *storeDir
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if verify != nil {
		c.Verify = *verify
	}
	if lock != nil {
		c.Lock = *lock
	}
	if journalEnabled != nil {
		c.Journal.Enabled = *journalEnabled
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.IntakeDir == "" {
		return fmt.Errorf("intake_dir cannot be empty")
	}
	if c.StoreDir == "" {
		return fmt.Errorf("store_dir cannot be empty")
	}
	// The relocation protocol deletes sources after copying; pointing both
	// roots at one directory would make it eat its own output.
	if filepath.Clean(c.IntakeDir) == filepath.Clean(c.StoreDir) {
		return fmt.Errorf("intake_dir and store_dir must differ, both are %q", filepath.Clean(c.IntakeDir))
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Verify != "size" && c.Verify != "digest" {
		return fmt.Errorf("invalid verify mode %q, must be \"size\" or \"digest\"", c.Verify)
	}

	if c.Journal.Enabled {
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path cannot be empty when the journal is enabled")
		}
		if c.Journal.KeepDays < 0 {
			return fmt.Errorf("journal.keep_days must be >= 0, got %d", c.Journal.KeepDays)
		}
	}

	return nil
}
