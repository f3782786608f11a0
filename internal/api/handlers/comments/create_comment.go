// Package comments provides HTTP handlers for the comment API
package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/comments"
)

// CreateCommentRequest is the body of a comment creation request
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new create comment handler
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreate handles POST /api/posts/{id}/comments
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req CreateCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), middleware.GetCaller(r), req.Content)
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
