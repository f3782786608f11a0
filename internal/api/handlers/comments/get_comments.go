package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/core/comments"
)

// GetCommentsResponse wraps the comment list
type GetCommentsResponse struct {
	Message  string                  `json:"message"`
	Comments []*comments.CommentView `json:"comments"`
}

// GetCommentsHandler handles comment retrieval for posts
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new handler for fetching comments
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{service: service}
}

// HandleGetComments handles GET /api/posts/{id}/comments
// Comments are returned newest first. No authentication is required.
func (h *GetCommentsHandler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	if list == nil {
		list = []*comments.CommentView{}
	}

	handlers.WriteJSON(w, http.StatusOK, GetCommentsResponse{
		Message:  "Comments fetched successfully",
		Comments: list,
	})
}
