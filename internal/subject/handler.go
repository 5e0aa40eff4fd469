// AngelaMos | 2026
// handler.go

package subject

import (
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
	r.Route("/subjects", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{subjectID}", h.Get)
		r.Post("/{subjectID}/edit", h.Update)
		r.Post("/{subjectID}/delete", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subjects, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubjectResponseList(subjects))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateSubjectRequest
	if err := core.Bind(w, r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	subject, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.WriteError(w, err, "subject")
		return
	}

	core.Created(w, ToSubjectResponse(subject))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "subjectID")

	subject, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		core.WriteError(w, err, "subject")
		return
	}

	core.OK(w, ToSubjectResponse(subject))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "subjectID")

	var req UpdateSubjectRequest
	if err := core.Bind(w, r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	subject, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		core.WriteError(w, err, "subject")
		return
	}

	core.OK(w, ToSubjectResponse(subject))
}

// Delete removes the subject with its tasks, schedules and performance row.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "subjectID")

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		core.WriteError(w, err, "subject")
		return
	}

	core.NoContent(w)
}
