package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment overrides for the profile.
const (
	EnvDarkMode  = "LEADTOP_DARK_MODE"
	EnvStore     = "LEADTOP_STORE"
	EnvStorePath = "LEADTOP_STORE_PATH"
	EnvRedisAddr = "LEADTOP_REDIS_ADDR"
	EnvData      = "LEADTOP_DATA"
	EnvRefreshMS = "LEADTOP_REFRESH_MS"
)

// ApplyEnv overlays environment overrides onto c and re-validates it.
// LEADTOP_DARK_MODE sets DarkModeOverride; an empty value clears it.
func (c *ProfileConfiguration) ApplyEnv() error {
	if raw, ok := os.LookupEnv(EnvDarkMode); ok {
		if strings.TrimSpace(raw) == "" {
			c.DarkModeOverride = nil
		} else {
			v, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%s must be a boolean: %w", EnvDarkMode, err)
			}
			c.DarkModeOverride = &v
		}
	}

	var err error
	if c.Storage.Backend, err = readRequiredOrDefault(EnvStore, c.Storage.Backend); err != nil {
		return err
	}
	if c.Storage.Path, err = readRequiredOrDefault(EnvStorePath, c.Storage.Path); err != nil {
		return err
	}
	if c.Storage.RedisAddr, err = readRequiredOrDefault(EnvRedisAddr, c.Storage.RedisAddr); err != nil {
		return err
	}
	if c.DataPath, err = readRequiredOrDefault(EnvData, c.DataPath); err != nil {
		return err
	}
	if c.RefreshInterval, err = readInt(EnvRefreshMS, c.RefreshInterval, 100, 60_000); err != nil {
		return err
	}

	return c.Validate()
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if raw == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return raw, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}
