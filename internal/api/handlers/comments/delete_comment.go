package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/comments"
)

// DeleteCommentResponse reports who was allowed to delete the comment
type DeleteCommentResponse struct {
	Message       string `json:"message"`
	DeletedBy     string `json:"deletedBy"`
	CommentsCount int    `json:"commentsCount"`
}

// DeleteCommentHandler handles comment deletion
type DeleteCommentHandler struct {
	service comments.Service
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(service comments.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDelete handles DELETE /api/posts/{id}/comments?commentId=...
// and DELETE /api/posts/{id}/comments/{commentId}
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentId")
	if commentID == "" {
		commentID = r.URL.Query().Get("commentId")
	}

	result, err := h.service.DeleteComment(r.Context(), chi.URLParam(r, "id"), commentID, middleware.GetCaller(r))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, DeleteCommentResponse{
		Message:       "Comment deleted successfully",
		DeletedBy:     result.DeletedBy,
		CommentsCount: result.CommentsCount,
	})
}
