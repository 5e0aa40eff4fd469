// AngelaMos | 2026
// handler.go

package task

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{taskID}", h.Get)
		r.Post("/{taskID}/edit", h.Update)
		r.Post("/{taskID}/delete", h.Delete)
		r.Post("/{taskID}/status", h.UpdateStatus)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	tasks, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTaskResponseList(tasks))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateTaskRequest
	if err := core.Bind(w, r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	task, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.WriteError(w, err, "task")
		return
	}

	core.Created(w, ToTaskResponse(task))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "taskID")

	task, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		core.WriteError(w, err, "task")
		return
	}

	core.OK(w, ToTaskResponse(task))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "taskID")

	var req UpdateTaskRequest
	if err := core.Bind(w, r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	task, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		core.WriteError(w, err, "task")
		return
	}

	core.OK(w, ToTaskResponse(task))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "taskID")

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		core.WriteError(w, err, "task")
		return
	}

	core.NoContent(w)
}

// UpdateStatus answers with the compact {success, error} body used by
// in-page status toggles rather than the full envelope.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "taskID")

	var req UpdateStatusRequest
	if err := core.Bind(w, r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.service.UpdateStatus(r.Context(), userID, id, req.Status); err != nil {
		code, msg := statusFailure(err)
		writeStatus(w, code, msg)
		return
	}

	core.JSON(w, http.StatusOK, StatusResponse{Success: true})
}

func statusFailure(err error) (int, string) {
	if appErr, ok := core.AsAppError(err); ok {
		return appErr.StatusCode, appErr.Message
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "task not found"
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	default:
		slog.Error("update task status failed", "error", err)
		return http.StatusInternalServerError, "an unexpected error occurred"
	}
}

func writeStatus(w http.ResponseWriter, code int, msg string) {
	core.JSON(w, code, StatusResponse{Success: false, Error: msg})
}
