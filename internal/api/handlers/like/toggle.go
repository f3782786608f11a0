package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/likes"
)

// toggleResponse adds a human-readable message to the toggle result
type toggleResponse struct {
	Message    string `json:"message"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likesCount"`
}

// ToggleHandler handles like toggling
type ToggleHandler struct {
	service likes.Service
}

// NewToggleHandler creates a new toggle handler
func NewToggleHandler(service likes.Service) *ToggleHandler {
	return &ToggleHandler{service: service}
}

// HandleToggle handles POST /api/posts/{id}/like
// Likes the post if the caller has not liked it yet, otherwise unlikes it.
func (h *ToggleHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "id"), middleware.GetCaller(r))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	message := "Post unliked"
	if result.Liked {
		message = "Post liked"
	}

	handlers.WriteJSON(w, http.StatusOK, toggleResponse{
		Liked:      result.Liked,
		LikesCount: result.LikesCount,
		Message:    message,
	})
}
