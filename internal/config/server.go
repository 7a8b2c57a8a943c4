package config

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	defaultHost               = "0.0.0.0"
	defaultPort               = 2323
	defaultHostKeyPath        = ".data/host_ed25519"
	defaultIdleTimeout        = 10 * time.Minute
	defaultMaxSessions        = 32
	maximumConfiguredSessions = 1024
)

// Environment settings for `leadtop serve`.
const (
	EnvSSHHost        = "LEADTOP_SSH_HOST"
	EnvSSHPort        = "LEADTOP_SSH_PORT"
	EnvSSHHostKeyPath = "LEADTOP_SSH_HOST_KEY_PATH"
	EnvSSHIdleTimeout = "LEADTOP_SSH_IDLE_TIMEOUT"
	EnvSSHMaxSessions = "LEADTOP_SSH_MAX_SESSIONS"
)

// ServerConfig captures startup settings for `leadtop serve`.
type ServerConfig struct {
	Host        string
	Port        int
	HostKeyPath string
	IdleTimeout time.Duration
	MaxSessions int
}

// Address returns host:port.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadServerFromEnv loads SSH server configuration from environment variables.
func LoadServerFromEnv() (ServerConfig, error) {
	host, err := readRequiredOrDefault(EnvSSHHost, defaultHost)
	if err != nil {
		return ServerConfig{}, err
	}

	port, err := readInt(EnvSSHPort, defaultPort, 1, 65535)
	if err != nil {
		return ServerConfig{}, err
	}

	hostKeyPath, err := readRequiredOrDefault(EnvSSHHostKeyPath, defaultHostKeyPath)
	if err != nil {
		return ServerConfig{}, err
	}
	cleanHostKeyPath := filepath.Clean(hostKeyPath)
	if cleanHostKeyPath == "." {
		return ServerConfig{}, fmt.Errorf("%s must not resolve to current directory", EnvSSHHostKeyPath)
	}

	idleTimeout, err := readDuration(EnvSSHIdleTimeout, defaultIdleTimeout)
	if err != nil {
		return ServerConfig{}, err
	}

	maxSessions, err := readInt(EnvSSHMaxSessions, defaultMaxSessions, 1, maximumConfiguredSessions)
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Host:        host,
		Port:        port,
		HostKeyPath: cleanHostKeyPath,
		IdleTimeout: idleTimeout,
		MaxSessions: maxSessions,
	}, nil
}
