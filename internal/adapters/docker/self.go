package docker

import (
	"context"
	"strings"

	"github.com/melih/dockwatch/internal/core/domain"
	"github.com/melih/dockwatch/internal/logging"
)

// SelfContainerID figures out which container the dashboard runs in. The
// container runtime sets the hostname to the short container id by default,
// so the first container whose id starts with the hostname (ignoring case)
// or whose name equals it wins. Custom hostnames defeat this; lookup errors
// are logged and reported as "not found".
func (a *Adapter) SelfContainerID(ctx context.Context) (string, bool) {
	host, ok := a.selfHostname()
	if !ok {
		return "", false
	}
	containers, err := a.ListContainers(ctx)
	if err != nil {
		logging.Get().Debug().Err(err).Msg("self detection: listing containers failed")
		return "", false
	}
	return MatchSelf(containers, host)
}

// Snapshot lists all containers once and resolves the self container from
// that same list. List errors propagate; self detection failures only leave
// SelfID empty.
func (a *Adapter) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	containers, err := a.ListContainers(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := domain.Snapshot{Containers: containers}
	if host, ok := a.selfHostname(); ok {
		snap.SelfID, _ = MatchSelf(containers, host)
	}
	return snap, nil
}

// MatchSelf returns the id of the first container whose id starts with host
// (ignoring case) or whose name equals host.
func MatchSelf(containers []domain.ContainerSummaryView, host string) (string, bool) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", false
	}
	lowerHost := strings.ToLower(host)
	for _, c := range containers {
		if strings.HasPrefix(strings.ToLower(c.ID), lowerHost) || c.Name == host {
			return c.ID, true
		}
	}
	logging.Get().Debug().Str("hostname", host).Msg("self detection: no container matches hostname")
	return "", false
}

func (a *Adapter) selfHostname() (string, bool) {
	host, err := a.hostname()
	if err != nil {
		logging.Get().Debug().Err(err).Msg("self detection: no hostname")
		return "", false
	}
	host = strings.TrimSpace(host)
	return host, host != ""
}
