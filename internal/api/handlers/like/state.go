package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/likes"
)

// StateHandler reports the viewer's like state
type StateHandler struct {
	service likes.Service
}

// NewStateHandler creates a new state handler
func NewStateHandler(service likes.Service) *StateHandler {
	return &StateHandler{service: service}
}

// HandleState handles GET /api/posts/{id}/like
// Anonymous viewers always read liked=false.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetLikeState(r.Context(), chi.URLParam(r, "id"), middleware.GetCaller(r))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
