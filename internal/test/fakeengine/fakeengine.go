package fakeengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/errdefs"
)

// Engine call names as recorded in Calls.
const (
	CallList    = "list"
	CallStart   = "start"
	CallStop    = "stop"
	CallRestart = "restart"
	CallLogs    = "logs"
)

// Call is one recorded engine round trip.
type Call struct {
	Op string
	ID string
}

// Engine is a fake Docker engine. The zero value is not usable; use New.
type Engine struct {
	mux        sync.Mutex
	containers []types.Container
	logs       map[string]string
	calls      []Call

	// ListErr, when set, is returned by every ContainerList call.
	ListErr error
}

// New returns a fake engine preloaded with the given containers, in order.
func New(containers ...types.Container) *Engine {
	e := &Engine{logs: map[string]string{}}
	for _, c := range containers {
		e.Add(c)
	}
	return e
}

// Add appends a container.
func (e *Engine) Add(c types.Container) {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.containers = append(e.containers, c)
}

// SetLogs sets the log text served for the container with the given id.
func (e *Engine) SetLogs(id, text string) {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.logs[id] = text
}

// Calls returns a copy of all recorded calls in order.
func (e *Engine) Calls() []Call {
	e.mux.Lock()
	defer e.mux.Unlock()
	return append([]Call(nil), e.calls...)
}

// Count returns how often op has been called.
func (e *Engine) Count(op string) int {
	n := 0
	for _, c := range e.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// State returns the current state of a container, or "" if unknown.
func (e *Engine) State(id string) string {
	e.mux.Lock()
	defer e.mux.Unlock()
	if idx := e.lookup(id); idx >= 0 {
		return e.containers[idx].State
	}
	return ""
}

// lookup finds a container by full id, id prefix or name. The caller must
// hold the lock.
func (e *Engine) lookup(ref string) int {
	for idx, c := range e.containers {
		if c.ID == ref || (ref != "" && strings.HasPrefix(c.ID, ref)) {
			return idx
		}
		for _, name := range c.Names {
			if strings.TrimPrefix(name, "/") == ref {
				return idx
			}
		}
	}
	return -1
}

func (e *Engine) record(op, id string) {
	e.calls = append(e.calls, Call{Op: op, ID: id})
}

// ContainerList returns all containers, honouring only options.All.
func (e *Engine) ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.record(CallList, "")
	if e.ListErr != nil {
		return nil, e.ListErr
	}
	cntrs := make([]types.Container, 0, len(e.containers))
	for _, c := range e.containers {
		if !options.All && c.State != "running" {
			continue
		}
		cntrs = append(cntrs, c)
	}
	return cntrs, nil
}

// ContainerStart moves a container into the running state.
func (e *Engine) ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error {
	return e.transition(ctx, CallStart, containerID, "running", "Up Less than a second")
}

// ContainerStop moves a container into the exited state.
func (e *Engine) ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error {
	return e.transition(ctx, CallStop, containerID, "exited", "Exited (0) Less than a second ago")
}

// ContainerRestart moves a container into the running state, whatever its
// previous state.
func (e *Engine) ContainerRestart(ctx context.Context, containerID string, options container.StopOptions) error {
	return e.transition(ctx, CallRestart, containerID, "running", "Up Less than a second")
}

func (e *Engine) transition(ctx context.Context, op, id, state, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.record(op, id)
	idx := e.lookup(id)
	if idx < 0 {
		return errdefs.NotFound(fmt.Errorf("No such container: %s", id))
	}
	c := &e.containers[idx]
	if op == CallStart && c.State == "running" {
		return errdefs.NotModified(errors.New("container already started"))
	}
	c.State = state
	c.Status = status
	return nil
}

// ContainerLogs serves the text set with SetLogs.
func (e *Engine) ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.record(CallLogs, containerID)
	idx := e.lookup(containerID)
	if idx < 0 {
		return nil, errdefs.NotFound(fmt.Errorf("No such container: %s", containerID))
	}
	return io.NopCloser(strings.NewReader(e.logs[e.containers[idx].ID])), nil
}
