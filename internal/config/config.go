package config

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Engine endpoints used when neither the config file nor DOCKER_HOST name one.
const (
	UnixDockerHost    = "unix:///var/run/docker.sock"
	WindowsDockerHost = "npipe:////./pipe/docker_engine"
)

// Config holds runtime configuration for the dashboard.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	// DockerHost is the engine API endpoint, e.g. unix:///var/run/docker.sock.
	DockerHost string `json:"docker_host" yaml:"docker_host"`

	LogLevel string `json:"log_level" yaml:"log_level"`
	LogFile  string `json:"log_file" yaml:"log_file"`

	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled"`

	// LogTail is the default number of log lines served per container; "all"
	// serves everything.
	LogTail string `json:"log_tail" yaml:"log_tail"`
}

// DefaultDockerHost returns the engine endpoint for the given GOOS, preferring
// a DOCKER_HOST found in the environment.
func DefaultDockerHost(goos string) string {
	if v := os.Getenv("DOCKER_HOST"); v != "" {
		return v
	}
	if goos == "windows" {
		return WindowsDockerHost
	}
	return UnixDockerHost
}

// DefaultConfig returns a sane default configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8080",
		DockerHost:     DefaultDockerHost(runtime.GOOS),
		LogLevel:       "info",
		MetricsEnabled: true,
		LogTail:        "200",
	}
}

// Validate returns a list of non-fatal configuration warnings.
func (c *Config) Validate() []string {
	var warnings []string
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid listen_addr %q: %v", c.ListenAddr, err))
	}
	if !strings.Contains(c.DockerHost, "://") {
		warnings = append(warnings, fmt.Sprintf("docker_host %q lacks a scheme (unix://, npipe://, tcp://)", c.DockerHost))
	}
	if c.LogTail != "all" {
		if n, err := strconv.Atoi(c.LogTail); err != nil || n < 0 {
			warnings = append(warnings, fmt.Sprintf("invalid log_tail %q (expected a number or \"all\")", c.LogTail))
		}
	}
	return warnings
}

// LoadConfigFromFile loads config from a YAML/JSON file on top of the defaults.
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
