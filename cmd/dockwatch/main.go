package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/melih/dockwatch/internal/adapters/docker"
	"github.com/melih/dockwatch/internal/adapters/http"
	"github.com/melih/dockwatch/internal/config"
	"github.com/melih/dockwatch/internal/logging"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code, so deferred cleanups finish before the
// process exits.
func run() int {
	cfgFile := flag.String("config", "", "Path to config file")
	listen := flag.String("listen", "", "Address to listen on (overrides config)")
	dockerHost := flag.String("docker-host", "", "Docker engine endpoint (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*cfgFile, *listen, *dockerHost)
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}

	cleanup, err := logging.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Printf("failed to initialize logger: %v", err)
		return 1
	}
	defer cleanup()
	for _, w := range cfg.Validate() {
		logging.Get().Warn().Msg(w)
	}

	// 1. Initialize Adapters (Infrastructure)
	dockerAdapter, err := docker.NewAdapter(cfg.DockerHost)
	if err != nil {
		logging.Get().Error().Err(err).Msg("failed to initialize Docker adapter")
		return 1
	}
	defer dockerAdapter.Close()

	if id, ok := dockerAdapter.SelfContainerID(context.Background()); ok {
		logging.Get().Info().Str("container", id).Msg("running inside container, protecting it")
	} else {
		logging.Get().Warn().Msg("could not identify own container; it will not be protected")
	}

	// 2. Initialize HTTP Handlers (Interface Adapters)
	containerHandler := http.NewContainerHandler(dockerAdapter, cfg.LogTail)
	app := http.NewApp(containerHandler, cfg.MetricsEnabled)

	// 3. Start Server
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logging.Get().Error().Err(err).Str("addr", cfg.ListenAddr).Msg("server failed to start")
		return 1
	}
	logging.Get().Info().Str("addr", cfg.ListenAddr).Str("docker_host", cfg.DockerHost).Msg("server starting")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(app, ln, sig); err != nil {
		logging.Get().Error().Err(err).Msg("server stopped")
		return 1
	}
	return 0
}

// serve runs app on ln until it fails or a signal arrives, in which case it
// shuts down gracefully.
func serve(app *fiber.App, ln net.Listener, sig <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-sig:
		logging.Get().Info().Msg("shutdown signal received")
		return app.ShutdownWithTimeout(5 * time.Second)
	}
}

// loadConfig layers defaults, the optional config file, environment
// variables and finally CLI flags.
func loadConfig(path, listen, dockerHost string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		c, err := config.LoadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if listen != "" {
		cfg.ListenAddr = listen
	}
	if dockerHost != "" {
		cfg.DockerHost = dockerHost
	}
	return cfg, nil
}
