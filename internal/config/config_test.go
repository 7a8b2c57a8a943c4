package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadflow/leadtop/internal/storage"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.DefaultDark)
	assert.Nil(t, cfg.DarkModeOverride)
	assert.True(t, cfg.ModuleEnabled(ModuleStats))
	assert.False(t, cfg.ModuleEnabled("gpu"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().RefreshInterval, cfg.RefreshInterval)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_dark": true, "dark_mode_override": false, "storage": {"backend": "memory"}}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.DefaultDark)
	require.NotNil(t, cfg.DarkModeOverride)
	assert.False(t, *cfg.DarkModeOverride)
	assert.Equal(t, 1000, cfg.RefreshInterval)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	cfg, err := LoadConfig(bad)
	assert.Error(t, err)
	assert.NotNil(t, cfg, "defaults returned alongside the error")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"refresh_interval": 5}`), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	on := true
	cfg := DefaultConfig()
	cfg.DarkModeOverride = &on
	cfg.RateField = "callsCompleted"

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.DarkModeOverride)
	assert.True(t, *loaded.DarkModeOverride)
	assert.Equal(t, "callsCompleted", loaded.RateField)
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	body := `default_dark: true
refresh_interval: 2500
enabled_modules: [stats, leads]
storage:
  backend: redis
  redis_addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.DefaultDark)
	assert.Equal(t, 2500, cfg.RefreshInterval)
	assert.False(t, cfg.ModuleEnabled(ModuleActivity))
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 200, cfg.MaxLeads, "omitted keys keep defaults")
}

func TestSaveConfigYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yml")
	off := false
	cfg := DefaultConfig()
	cfg.DarkModeOverride = &off
	cfg.MaxLeads = 50

	require.NoError(t, SaveConfig(cfg, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "max_leads: 50")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.DarkModeOverride)
	assert.False(t, *loaded.DarkModeOverride)
	assert.Equal(t, 50, loaded.MaxLeads)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProfileConfiguration)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*ProfileConfiguration) {}},
		{name: "refresh too low", mutate: func(c *ProfileConfiguration) { c.RefreshInterval = 10 }, wantErr: true},
		{name: "max leads zero", mutate: func(c *ProfileConfiguration) { c.MaxLeads = 0 }, wantErr: true},
		{name: "column width out of range", mutate: func(c *ProfileConfiguration) { c.ColumnWidths["activity"] = 1.5 }, wantErr: true},
		{name: "unknown module", mutate: func(c *ProfileConfiguration) { c.EnabledModules = []string{"gpu"} }, wantErr: true},
		{name: "unknown rate field", mutate: func(c *ProfileConfiguration) { c.RateField = "revenue" }, wantErr: true},
		{name: "empty rate field defaults", mutate: func(c *ProfileConfiguration) { c.RateField = "" }},
		{name: "empty backend defaults", mutate: func(c *ProfileConfiguration) { c.Storage.Backend = "" }},
		{name: "file backend needs path", mutate: func(c *ProfileConfiguration) { c.Storage.Backend = "file"; c.Storage.Path = "" }, wantErr: true},
		{name: "redis backend needs addr", mutate: func(c *ProfileConfiguration) { c.Storage.Backend = "redis" }, wantErr: true},
		{name: "redis backend", mutate: func(c *ProfileConfiguration) { c.Storage.Backend = "REDIS"; c.Storage.RedisAddr = "localhost:6379" }},
		{name: "unknown backend", mutate: func(c *ProfileConfiguration) { c.Storage.Backend = "etcd" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateNormalises(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateField = ""
	cfg.Storage.Backend = " Redis "
	cfg.Storage.RedisAddr = "localhost:6379"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "leads", cfg.RateField)
	assert.Equal(t, "redis", cfg.Storage.Backend)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDarkMode, "true")
	t.Setenv(EnvStore, "memory")
	t.Setenv(EnvData, "/tmp/data.json")
	t.Setenv(EnvRefreshMS, "2500")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	require.NotNil(t, cfg.DarkModeOverride)
	assert.True(t, *cfg.DarkModeOverride)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/data.json", cfg.DataPath)
	assert.Equal(t, 2500, cfg.RefreshInterval)
}

func TestApplyEnvClearsOverride(t *testing.T) {
	t.Setenv(EnvDarkMode, "")
	on := true
	cfg := DefaultConfig()
	cfg.DarkModeOverride = &on
	require.NoError(t, cfg.ApplyEnv())
	assert.Nil(t, cfg.DarkModeOverride)
}

func TestApplyEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvDarkMode, "sometimes"},
		{EnvStore, ""},
		{EnvRefreshMS, "fast"},
		{EnvRefreshMS, "1"},
		{EnvStore, "etcd"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			assert.Error(t, DefaultConfig().ApplyEnv())
		})
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage = StorageConfig{Backend: "redis", RedisAddr: "r:6379", RedisTimeoutMS: 250}
	opts := cfg.StoreOptions()
	assert.Equal(t, storage.BackendRedis, opts.Backend)
	assert.Equal(t, "r:6379", opts.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, opts.RedisTimeout)
}

func TestLoadServerFromEnvDefaults(t *testing.T) {
	cfg, err := LoadServerFromEnv()
	require.NoError(t, err)
	assert.Equal(t, defaultHost, cfg.Host)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, "0.0.0.0:2323", cfg.Address())
}

func TestLoadServerFromEnvOverrides(t *testing.T) {
	t.Setenv("LEADTOP_SSH_HOST", "127.0.0.1")
	t.Setenv("LEADTOP_SSH_PORT", "2200")
	t.Setenv("LEADTOP_SSH_HOST_KEY_PATH", "keys/../keys/host")
	t.Setenv("LEADTOP_SSH_IDLE_TIMEOUT", "30s")
	t.Setenv("LEADTOP_SSH_MAX_SESSIONS", "4")

	cfg, err := LoadServerFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{
		Host:        "127.0.0.1",
		Port:        2200,
		HostKeyPath: "keys/host",
		IdleTimeout: 30 * time.Second,
		MaxSessions: 4,
	}, cfg)
}

func TestServerEnvKeys(t *testing.T) {
	assert.Equal(t, []string{
		"LEADTOP_SSH_HOST",
		"LEADTOP_SSH_PORT",
		"LEADTOP_SSH_HOST_KEY_PATH",
		"LEADTOP_SSH_IDLE_TIMEOUT",
		"LEADTOP_SSH_MAX_SESSIONS",
	}, []string{EnvSSHHost, EnvSSHPort, EnvSSHHostKeyPath, EnvSSHIdleTimeout, EnvSSHMaxSessions})
}

func TestLoadServerFromEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LEADTOP_SSH_HOST", ""},
		{"LEADTOP_SSH_PORT", "70000"},
		{"LEADTOP_SSH_HOST_KEY_PATH", "."},
		{"LEADTOP_SSH_IDLE_TIMEOUT", "-1s"},
		{"LEADTOP_SSH_IDLE_TIMEOUT", "soon"},
		{"LEADTOP_SSH_MAX_SESSIONS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadServerFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
