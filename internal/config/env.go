package config

import (
	"fmt"
	"os"
	"strconv"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Returns an error if parsing fails.
//
// Environment variables supported:
// - DOCKWATCH_LISTEN_ADDR (string, e.g. ":8080")
// - DOCKWATCH_DOCKER_HOST (string, e.g. "unix:///var/run/docker.sock")
// - DOCKWATCH_LOG_LEVEL (string, "debug"/"info"/"warn"/"error")
// - DOCKWATCH_LOG_FILE (string, path)
// - DOCKWATCH_METRICS_ENABLED (bool, "true"/"false")
// - DOCKWATCH_LOG_TAIL (string, number of lines or "all")
func ApplyEnvOverrides(cfg *Config) error {
	setStringEnv("DOCKWATCH_LISTEN_ADDR", &cfg.ListenAddr)
	setStringEnv("DOCKWATCH_DOCKER_HOST", &cfg.DockerHost)
	setStringEnv("DOCKWATCH_LOG_LEVEL", &cfg.LogLevel)
	setStringEnv("DOCKWATCH_LOG_FILE", &cfg.LogFile)
	setStringEnv("DOCKWATCH_LOG_TAIL", &cfg.LogTail)
	return setBoolEnv("DOCKWATCH_METRICS_ENABLED", func(b bool) { cfg.MetricsEnabled = b })
}

func setStringEnv(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func setBoolEnv(name string, set func(bool)) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	set(b)
	return nil
}
