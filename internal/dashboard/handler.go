// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/dashboard", h.Summary)
		r.Get("/profile", h.Profile)
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		core.WriteError(w, err, "dashboard")
		return
	}

	core.OK(w, ToSummaryResponse(summary))
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.OK(w, ToProfileResponse(profile))
}
