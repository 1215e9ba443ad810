package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/melih/dockwatch/internal/core/domain"
	"github.com/melih/dockwatch/internal/core/ports"
	"github.com/melih/dockwatch/internal/logging"
	"github.com/melih/dockwatch/internal/metrics"
)

// EngineAPI is the subset of the Docker client the adapter calls.
type EngineAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRestart(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
}

var (
	_ EngineAPI             = (*client.Client)(nil)
	_ ports.ContainerService = (*Adapter)(nil)
)

// Adapter implements ports.ContainerService using the Docker SDK.
type Adapter struct {
	cli      EngineAPI
	hostname func() (string, error)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHostname replaces os.Hostname as the source of the self container's
// hostname.
func WithHostname(fn func() (string, error)) Option {
	return func(a *Adapter) { a.hostname = fn }
}

// New wraps an existing engine client.
func New(cli EngineAPI, opts ...Option) *Adapter {
	a := &Adapter{cli: cli, hostname: os.Hostname}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewAdapter creates a Docker client talking to host and wraps it. An empty
// host falls back to the DOCKER_HOST environment and then the platform
// default socket.
func NewAdapter(host string, opts ...Option) (*Adapter, error) {
	clientOpts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		clientOpts = append(clientOpts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return New(cli, opts...), nil
}

// Close releases the underlying client's connections, if it holds any.
func (a *Adapter) Close() error {
	if c, ok := a.cli.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ListContainers returns all containers, stopped ones included.
func (a *Adapter) ListContainers(ctx context.Context) ([]domain.ContainerSummaryView, error) {
	start := time.Now()
	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: true})
	metrics.ObserveList(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	result := make([]domain.ContainerSummaryView, 0, len(containers))
	for _, c := range containers {
		result = append(result, ToView(c))
	}
	return result, nil
}

// StartContainer starts an existing container.
func (a *Adapter) StartContainer(ctx context.Context, id string) (bool, error) {
	if err := a.cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return false, fmt.Errorf("failed to start container %s: %w", id, err)
	}
	return true, nil
}

// StopContainer stops a container, leaving the grace period to the engine.
func (a *Adapter) StopContainer(ctx context.Context, id string) (bool, error) {
	if err := a.cli.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		return false, fmt.Errorf("failed to stop container %s: %w", id, err)
	}
	return true, nil
}

// RestartContainer restarts a container.
func (a *Adapter) RestartContainer(ctx context.Context, id string) (bool, error) {
	if err := a.cli.ContainerRestart(ctx, id, container.StopOptions{}); err != nil {
		return false, fmt.Errorf("failed to restart container %s: %w", id, err)
	}
	return true, nil
}

// ContainerLogs returns the last tail lines of a container's stdout and
// stderr, without following. The stream is in the engine's multiplexed
// format unless the container runs with a TTY.
func (a *Adapter) ContainerLogs(ctx context.Context, id string, tail string) (io.ReadCloser, error) {
	if tail == "" {
		tail = "all"
	}
	logs, err := a.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
		Tail:       tail,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs of container %s: %w", id, err)
	}
	logging.Get().Debug().Str("container", id).Str("tail", tail).Msg("streaming container logs")
	return logs, nil
}
