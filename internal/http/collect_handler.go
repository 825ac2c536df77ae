// Package http exposes the beacon collection API over fiber.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lumetric/internal/events"
	"lumetric/internal/storage"
)

const (
	msgReportAccepted = "Report accepted"
	errInvalidRequest = "Invalid request"
	errInvalidProject = "Invalid project identifier"
)

// CollectHandler serves the three beacon endpoints. It owns no state
// beyond the recorder and logger; canonicalization is pure and every
// request is independent.
type CollectHandler struct {
	recorder storage.Recorder
	logger   *slog.Logger
}

// NewCollectHandler wires the collection endpoints to a recorder.
func NewCollectHandler(recorder storage.Recorder, logger *slog.Logger) *CollectHandler {
	return &CollectHandler{recorder: recorder, logger: logger}
}

// Visit handles POST /api/v1/:project/visit.
func (h *CollectHandler) Visit(c *fiber.Ctx) error {
	projectID, err := projectIDFromPath(c)
	if err != nil {
		return badRequest(c, errInvalidProject, "INVALID_PROJECT")
	}

	var body events.VisitRequest
	if err := c.BodyParser(&body); err != nil {
		h.logger.Debug("Failed to parse visit body", slog.Any("error", err))
		return badRequest(c, errInvalidRequest, "INVALID_BODY")
	}

	visit, err := events.HandleVisit(projectID, body, userAgentFrom(c))
	if err != nil {
		return h.rejectReport(c, err)
	}

	if err := h.recorder.RecordVisit(visit); err != nil {
		h.logger.Error("Failed to record visit", slog.Any("error", err))
		return serverError(c)
	}

	return accepted(c)
}

// Exit handles POST /api/v1/:project/exit.
func (h *CollectHandler) Exit(c *fiber.Ctx) error {
	projectID, err := projectIDFromPath(c)
	if err != nil {
		return badRequest(c, errInvalidProject, "INVALID_PROJECT")
	}

	var body events.ExitRequest
	if err := c.BodyParser(&body); err != nil {
		h.logger.Debug("Failed to parse exit body", slog.Any("error", err))
		return badRequest(c, errInvalidRequest, "INVALID_BODY")
	}

	visit, err := events.HandleExit(projectID, body, userAgentFrom(c))
	if err != nil {
		return h.rejectReport(c, err)
	}

	if err := h.recorder.RecordVisit(visit); err != nil {
		h.logger.Error("Failed to record exit", slog.Any("error", err))
		return serverError(c)
	}

	return accepted(c)
}

// Event handles POST /api/v1/:project/event.
func (h *CollectHandler) Event(c *fiber.Ctx) error {
	projectID, err := projectIDFromPath(c)
	if err != nil {
		return badRequest(c, errInvalidProject, "INVALID_PROJECT")
	}

	var body events.EventRequest
	if err := c.BodyParser(&body); err != nil {
		h.logger.Debug("Failed to parse event body", slog.Any("error", err))
		return badRequest(c, errInvalidRequest, "INVALID_BODY")
	}

	event, err := events.HandleEvent(projectID, body, userAgentFrom(c))
	if err != nil {
		return h.rejectReport(c, err)
	}

	if err := h.recorder.RecordEvent(event); err != nil {
		h.logger.Error("Failed to record event", slog.Any("error", err))
		return serverError(c)
	}

	return accepted(c)
}

// rejectReport translates the two canonicalization failures into client
// errors; anything else is a server fault.
func (h *CollectHandler) rejectReport(c *fiber.Ctx, err error) error {
	var missingErr *events.MissingFieldError
	if errors.As(err, &missingErr) {
		h.logger.Debug("Rejected report", slog.Any("error", err))
		return badRequest(c, err.Error(), "MISSING_FIELD")
	}

	var sessionErr *events.SessionParseError
	if errors.As(err, &sessionErr) {
		h.logger.Debug("Rejected report", slog.Any("error", err))
		return badRequest(c, err.Error(), "MALFORMED_SESSION")
	}

	h.logger.Error("Failed to process report", slog.Any("error", err))
	return serverError(c)
}

func projectIDFromPath(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("project"), 10, 64)
}

// userAgentFrom reads the User-Agent header, honoring the forwarded
// header set by proxying script loaders.
func userAgentFrom(c *fiber.Ctx) string {
	if forwardedUA := c.Get("X-Forwarded-User-Agent"); forwardedUA != "" {
		return forwardedUA
	}
	return c.Get("User-Agent")
}

func accepted(c *fiber.Ctx) error {
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"message": msgReportAccepted,
		"status":  http.StatusAccepted,
	})
}

func badRequest(c *fiber.Ctx, message, code string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to record report",
		"code":  "RECORDING_ERROR",
	})
}
