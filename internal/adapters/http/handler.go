package http

import (
	"context"
	"strconv"

	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/gofiber/fiber/v2"
	"github.com/melih/dockwatch/internal/core/domain"
	"github.com/melih/dockwatch/internal/core/ports"
	"github.com/melih/dockwatch/internal/logging"
	"github.com/melih/dockwatch/internal/metrics"
)

// ContainerHandler serves the container list and the start/stop/restart
// actions. Every action answers with a fresh snapshot so clients never
// render stale state after a mutation.
type ContainerHandler struct {
	service ports.ContainerService
	logTail string
}

func NewContainerHandler(service ports.ContainerService, logTail string) *ContainerHandler {
	return &ContainerHandler{service: service, logTail: logTail}
}

// refresh re-lists after a mutation. The self container cannot change by
// acting on another container, so the self id found before is kept.
func (h *ContainerHandler) refresh(ctx context.Context, selfID string) (domain.Snapshot, error) {
	containers, err := h.service.ListContainers(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{SelfID: selfID, Containers: containers}, nil
}

func (h *ContainerHandler) ListContainers(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.UserContext())
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(snap)
}

func (h *ContainerHandler) StartContainer(c *fiber.Ctx) error {
	return h.mutate(c, "start", h.service.StartContainer)
}

func (h *ContainerHandler) StopContainer(c *fiber.Ctx) error {
	return h.mutate(c, "stop", h.service.StopContainer)
}

func (h *ContainerHandler) RestartContainer(c *fiber.Ctx) error {
	return h.mutate(c, "restart", h.service.RestartContainer)
}

// mutate refuses actions on the self container, runs op and then re-lists.
func (h *ContainerHandler) mutate(c *fiber.Ctx, action string, op func(context.Context, string) (bool, error)) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Container ID is required",
		})
	}
	ctx := c.UserContext()

	before, err := h.service.Snapshot(ctx)
	if err != nil {
		return engineError(c, err)
	}
	if refersToSelf(before, id) {
		metrics.RecordSelfGuardRefusal(action)
		logging.Get().Warn().Str("container", id).Str("action", action).Msg("refusing to act on the dashboard's own container")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "refusing to " + action + " the dashboard's own container",
		})
	}

	_, err = op(ctx, id)
	metrics.RecordAction(action, err)
	if err != nil {
		logging.Get().Error().Err(err).Str("container", id).Str("action", action).Msg("container action failed")
		return engineError(c, err)
	}
	logging.Get().Info().Str("container", id).Str("action", action).Msg("container action done")

	after, err := h.refresh(ctx, before.SelfID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(after)
}

// refersToSelf reports whether ref names the self container by id, any id
// prefix, or name.
func refersToSelf(snap domain.Snapshot, ref string) bool {
	if snap.IsSelf(ref) {
		return true
	}
	for _, cntr := range snap.Containers {
		if cntr.ID == snap.SelfID {
			return cntr.Name != "" && cntr.Name == ref
		}
	}
	return false
}

func (h *ContainerHandler) GetContainerLogs(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Container ID is required",
		})
	}
	tail := c.Query("tail", h.logTail)
	if tail != "all" {
		if n, err := strconv.Atoi(tail); err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tail must be a non-negative number or \"all\"",
			})
		}
	}

	logs, err := h.service.ContainerLogs(c.UserContext(), id, tail)
	if err != nil {
		return engineError(c, err)
	}
	// fasthttp closes the stream once the body has been written.
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendStream(logs)
}

// engineError maps engine errors onto HTTP status codes.
func engineError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errdefs.IsNotFound(err):
		status = fiber.StatusNotFound
	case errdefs.IsConflict(err), errdefs.IsNotModified(err):
		status = fiber.StatusConflict
	case client.IsErrConnectionFailed(err), errdefs.IsUnavailable(err):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
