package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/okulov/windiag/internal/models"
)

// Config holds all configuration for windiag
type Config struct {
	// Default scan mode (quick, full)
	Mode string `mapstructure:"mode"`

	// Output format (text, json, yaml, html)
	Format string `mapstructure:"format"`

	// Collector categories run in quick mode
	QuickCategories []string `mapstructure:"quick_categories"`

	// Per-collector timeout in seconds
	CollectorTimeout int `mapstructure:"collector_timeout"`

	// Timeout for the slow collectors (drivers, scheduled tasks)
	SlowCollectorTimeout int `mapstructure:"slow_collector_timeout"`

	// Process CPU sampling window in seconds
	ProcessSample int `mapstructure:"process_sample"`

	// Number of top processes to report
	TopProcesses int `mapstructure:"top_processes"`

	// Maximum scheduled tasks to report
	MaxTasks int `mapstructure:"max_tasks"`

	// Threshold for CI/CD failure (warning+critical findings)
	FailThreshold int `mapstructure:"fail_threshold"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Mode:                 "full",
		Format:               "text",
		QuickCategories:      []string{"startup", "process"},
		CollectorTimeout:     30,
		SlowCollectorTimeout: 90,
		ProcessSample:        2,
		TopProcesses:         20,
		MaxTasks:             100,
		FailThreshold:        0, // 0 means no threshold check
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (~/.windiag.yaml or ./windiag.yaml)
// 3. Environment variables (WINDIAG_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path
// If path is empty, it searches for config in standard locations
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("quick_categories", defaults.QuickCategories)
	v.SetDefault("collector_timeout", defaults.CollectorTimeout)
	v.SetDefault("slow_collector_timeout", defaults.SlowCollectorTimeout)
	v.SetDefault("process_sample", defaults.ProcessSample)
	v.SetDefault("top_processes", defaults.TopProcesses)
	v.SetDefault("max_tasks", defaults.MaxTasks)
	v.SetDefault("fail_threshold", defaults.FailThreshold)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("debug", defaults.Debug)

	v.SetConfigName("windiag")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search for config in standard locations
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "windiag"))
		}
	}

	v.SetEnvPrefix("WINDIAG")
	v.AutomaticEnv()

	// Config file not found is OK, we'll use defaults
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validModes := map[string]bool{
		"quick": true,
		"full":  true,
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode: %s (must be quick or full)", c.Mode)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"html": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text, json, yaml, or html)", c.Format)
	}

	valid := make(map[string]bool)
	for _, cat := range models.AllCategories() {
		valid[string(cat)] = true
	}
	for _, name := range c.QuickCategories {
		if !valid[name] {
			return fmt.Errorf("invalid quick category: %s", name)
		}
	}
	if len(c.QuickCategories) == 0 {
		return fmt.Errorf("quick_categories cannot be empty")
	}

	if c.CollectorTimeout <= 0 {
		return fmt.Errorf("collector_timeout must be positive")
	}
	if c.SlowCollectorTimeout <= 0 {
		return fmt.Errorf("slow_collector_timeout must be positive")
	}
	if c.ProcessSample <= 0 {
		return fmt.Errorf("process_sample must be positive")
	}
	if c.TopProcesses <= 0 {
		return fmt.Errorf("top_processes must be positive")
	}
	if c.MaxTasks <= 0 {
		return fmt.Errorf("max_tasks must be positive")
	}
	if c.FailThreshold < 0 {
		return fmt.Errorf("fail_threshold cannot be negative")
	}

	return nil
}

// ScanMode converts the configured mode string to a ScanMode.
func (c *Config) ScanMode() models.ScanMode {
	if c.Mode == "quick" {
		return models.ModeQuick
	}
	return models.ModeFull
}

// QuickSet converts quick_categories to typed categories.
func (c *Config) QuickSet() []models.Category {
	cats := make([]models.Category, 0, len(c.QuickCategories))
	for _, name := range c.QuickCategories {
		cats = append(cats, models.Category(name))
	}
	return cats
}

// CollectorTimeoutDuration returns the ordinary collector timeout.
func (c *Config) CollectorTimeoutDuration() time.Duration {
	return time.Duration(c.CollectorTimeout) * time.Second
}

// SlowCollectorTimeoutDuration returns the slow collector timeout.
func (c *Config) SlowCollectorTimeoutDuration() time.Duration {
	return time.Duration(c.SlowCollectorTimeout) * time.Second
}

// ProcessSampleDuration returns the CPU sampling window.
func (c *Config) ProcessSampleDuration() time.Duration {
	return time.Duration(c.ProcessSample) * time.Second
}

// ShouldFailOnThreshold checks if the issue count exceeds the threshold
func (c *Config) ShouldFailOnThreshold(issueCount int) bool {
	if c.FailThreshold == 0 {
		return false
	}
	return issueCount > c.FailThreshold
}

// GenerateSampleConfig generates a sample configuration file content
func GenerateSampleConfig() string {
	return `# windiag Configuration
# Save this file as ~/.windiag.yaml or ./windiag.yaml

# Default scan mode: quick or full
mode: full

# Output format: text, json, yaml, or html
format: text

# Collectors run in quick mode
quick_categories:
  - startup
  - process

# Per-collector timeout in seconds
collector_timeout: 30

# Timeout for the slow collectors (drivers, scheduled tasks)
slow_collector_timeout: 90

# Process CPU sampling window in seconds
process_sample: 2

# Number of top processes to report
top_processes: 20

# Maximum scheduled tasks to report
max_tasks: 100

# Fail threshold for CI/CD (exit code 1 if warning+critical findings
# exceed this number; 0 disables the check)
fail_threshold: 0

# Enable verbose output
verbose: false

# Enable debug mode
debug: false
`
}
