// internal/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig loads and validates configuration from the specified file.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// If the file doesn't exist or fails to parse, returns default configuration.
func LoadConfig(path string) (*ProfileConfiguration, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}

	// Start from defaults so omitted keys keep sensible values.
	config := DefaultConfig()
	if err := unmarshal(path, data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// defaultConfigNames are tried in order by LoadDefaultConfig.
var defaultConfigNames = []string{"profiles.json", "profiles.yaml", "profiles.yml"}

// LoadDefaultConfig loads configuration from "profiles.json" (or
// profiles.yaml) in the current working directory, then next to the
// executable.
func LoadDefaultConfig() (*ProfileConfiguration, error) {
	dirs := []string{"."}

	// Try config directory relative to executable
	if exePath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exePath))
	}

	for _, dir := range dirs {
		for _, name := range defaultConfigNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return LoadConfig(configPath)
			}
		}
	}

	return DefaultConfig(), nil
}

// SaveConfig writes configuration to path, as YAML for .yaml/.yml and JSON otherwise.
func SaveConfig(config *ProfileConfiguration, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and normalises values in place.
func (c *ProfileConfiguration) Validate() error {
	if c.RefreshInterval < 100 {
		return fmt.Errorf("%w: refresh_interval must be at least 100ms, got %d", ErrInvalidConfig, c.RefreshInterval)
	}
	if c.MaxLeads < 1 {
		return fmt.Errorf("%w: max_leads must be positive, got %d", ErrInvalidConfig, c.MaxLeads)
	}

	if c.ColumnWidths == nil {
		c.ColumnWidths = DefaultConfig().ColumnWidths
	}
	for name, w := range c.ColumnWidths {
		if w <= 0 || w >= 1 {
			return fmt.Errorf("%w: column_widths[%s] must be between 0 and 1, got %.2f", ErrInvalidConfig, name, w)
		}
	}

	for _, m := range c.EnabledModules {
		switch m {
		case ModuleStats, ModuleActivity, ModuleLeads:
		default:
			return fmt.Errorf("%w: unknown module %q", ErrInvalidConfig, m)
		}
	}

	switch c.RateField {
	case "":
		c.RateField = "leads"
	case "leads", "callsCompleted":
	default:
		return fmt.Errorf("%w: rate_field must be leads or callsCompleted, got %q", ErrInvalidConfig, c.RateField)
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = "memory"
	case "memory":
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for the file backend", ErrInvalidConfig)
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("%w: storage.redis_addr is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.RedisTimeoutMS < 0 {
		return fmt.Errorf("%w: storage.redis_timeout_ms must not be negative", ErrInvalidConfig)
	}

	return nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".leadtop", "preferences.json")
	}
	return filepath.Join(dir, "leadtop", "preferences.json")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, out *ProfileConfiguration) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, out)
	}
	return json.Unmarshal(data, out)
}
