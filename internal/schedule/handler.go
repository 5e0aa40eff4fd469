// AngelaMos | 2026
// handler.go

package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/middleware"
	"github.com/carterperez-dev/studyplanner/internal/task"
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
	r.Route("/schedule", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.Calendar)
		r.Post("/", h.Create)
		r.Post("/{scheduleID}/delete", h.Delete)
	})
}

func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	slots, tasks, err := h.service.Calendar(r.Context(), userID)
	if err != nil {
		core.WriteError(w, err, "schedule")
		return
	}

	core.OK(w, CalendarResponse{
		Schedules: ToScheduleResponseList(slots),
		Tasks:     task.ToTaskResponseList(tasks),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateScheduleRequest
	if err := core.Bind(w, r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	slot, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.WriteError(w, err, "schedule")
		return
	}

	core.Created(w, ToScheduleResponse(slot))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "scheduleID")

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		core.WriteError(w, err, "schedule")
		return
	}

	core.NoContent(w)
}
