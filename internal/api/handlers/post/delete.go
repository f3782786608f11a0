package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/posts"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/posts/{id}
// The post is soft-deleted; its likes and comments stay in storage.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id"), middleware.GetCaller(r))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	})
}
