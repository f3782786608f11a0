package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/core/posts"
)

// GetHandler serves a single post
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /api/posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
