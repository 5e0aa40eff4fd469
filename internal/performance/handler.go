// AngelaMos | 2026
// handler.go

package performance

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
	r.With(authenticator).Get("/performance", h.List)
}

// List recomputes every subject before responding so the rows are current.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	perfs, err := h.service.RecomputeAll(r.Context(), userID)
	if err != nil {
		core.WriteError(w, err, "performance")
		return
	}

	core.OK(w, ToPerformanceResponseList(perfs))
}
