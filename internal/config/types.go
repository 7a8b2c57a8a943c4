package config

import (
	"time"

	"github.com/leadflow/leadtop/internal/storage"
)

// ProfileConfiguration defines the user-configurable settings for leadtop.
type ProfileConfiguration struct {
	DefaultDark      bool               `json:"default_dark" yaml:"default_dark"`
	DarkModeOverride *bool              `json:"dark_mode_override,omitempty" yaml:"dark_mode_override,omitempty"` // Pins the theme, ignoring the stored preference
	ColumnWidths     map[string]float64 `json:"column_widths" yaml:"column_widths"`
	RefreshInterval  int                `json:"refresh_interval" yaml:"refresh_interval"` // In milliseconds
	MaxLeads         int                `json:"max_leads" yaml:"max_leads"`
	ShowTooltips     bool               `json:"show_tooltips" yaml:"show_tooltips"`
	EnabledModules   []string           `json:"enabled_modules" yaml:"enabled_modules"`
	RateField        string             `json:"rate_field" yaml:"rate_field"` // Activity field summed by the conversion-rate card
	DataPath         string             `json:"data_path,omitempty" yaml:"data_path,omitempty"`
	Storage          StorageConfig      `json:"storage" yaml:"storage"`
}

// StorageConfig selects where the theme preference is kept.
type StorageConfig struct {
	Backend        string `json:"backend" yaml:"backend"` // memory, file or redis
	Path           string `json:"path,omitempty" yaml:"path,omitempty"`
	RedisAddr      string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisTimeoutMS int    `json:"redis_timeout_ms,omitempty" yaml:"redis_timeout_ms,omitempty"`
}

// Module names accepted in EnabledModules.
const (
	ModuleStats    = "stats"
	ModuleActivity = "activity"
	ModuleLeads    = "leads"
)

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() *ProfileConfiguration {
	return &ProfileConfiguration{
		DefaultDark: false,
		ColumnWidths: map[string]float64{
			ModuleActivity: 0.40,
			ModuleLeads:    0.60,
		},
		RefreshInterval: 1000,
		MaxLeads:        200,
		ShowTooltips:    true,
		EnabledModules:  []string{ModuleStats, ModuleActivity, ModuleLeads},
		RateField:       "leads",
		Storage: StorageConfig{
			Backend:        "file",
			Path:           defaultStorePath(),
			RedisTimeoutMS: 500,
		},
	}
}

// ModuleEnabled reports whether name is listed in EnabledModules.
func (c *ProfileConfiguration) ModuleEnabled(name string) bool {
	for _, m := range c.EnabledModules {
		if m == name {
			return true
		}
	}
	return false
}

// StoreOptions converts the storage section into storage.Options.
func (c *ProfileConfiguration) StoreOptions() storage.Options {
	return storage.Options{
		Backend:      storage.Backend(c.Storage.Backend),
		Path:         c.Storage.Path,
		RedisAddr:    c.Storage.RedisAddr,
		RedisTimeout: time.Duration(c.Storage.RedisTimeoutMS) * time.Millisecond,
	}
}
