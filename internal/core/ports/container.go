package ports

import (
	"context"
	"io"

	"github.com/melih/dockwatch/internal/core/domain"
)

// ContainerService defines the container operations the dashboard offers.
// Implementations hold no state between calls and may be used concurrently.
type ContainerService interface {
	ListContainers(ctx context.Context) ([]domain.ContainerSummaryView, error)
	StartContainer(ctx context.Context, id string) (bool, error)
	StopContainer(ctx context.Context, id string) (bool, error)
	RestartContainer(ctx context.Context, id string) (bool, error)
	// SelfContainerID returns the id of the container the dashboard runs in.
	// It never fails; ok is false when the container cannot be identified.
	SelfContainerID(ctx context.Context) (id string, ok bool)
	// Snapshot lists the containers and resolves the self container from a
	// single engine list call.
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	ContainerLogs(ctx context.Context, id string, tail string) (io.ReadCloser, error)
}
