package docker

import (
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/melih/dockwatch/internal/core/domain"
)

// ToView projects one engine list entry onto the dashboard's view record.
func ToView(c types.Container) domain.ContainerSummaryView {
	return domain.ContainerSummaryView{
		ID:     c.ID,
		Name:   ContainerName(c.Names),
		Image:  c.Image,
		State:  c.State,
		Status: c.Status,
		Ports:  FormatPorts(c.Ports),
	}
}

// ContainerName returns the first engine name with its leading "/" removed,
// or "" if the engine reported none.
func ContainerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// FormatPorts renders ports as "public->private/proto" entries joined by
// ", ", keeping engine order. Unpublished ports show a public port of 0.
func FormatPorts(ports []types.Port) string {
	if len(ports) == 0 {
		return ""
	}
	entries := make([]string, 0, len(ports))
	for _, p := range ports {
		entries = append(entries, fmt.Sprintf("%d->%d/%s", p.PublicPort, p.PrivatePort, p.Type))
	}
	return strings.Join(entries, ", ")
}
