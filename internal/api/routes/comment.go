package routes

import (
	"Agora/internal/api/handlers/comments"
	"Agora/internal/api/middleware"
	commentsCore "Agora/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment endpoints on the router
// Listing is public; create and delete require authentication
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	// Initialize handlers
	createHandler := comments.NewCreateCommentHandler(service)
	getHandler := comments.NewGetCommentsHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)

	r.Get("/posts/{id}/comments", getHandler.HandleGetComments)

	r.With(authMiddleware.RequireAuth).Post(
		"/posts/{id}/comments",
		createHandler.HandleCreate)

	// The comment id may come from the query string or the path
	r.With(authMiddleware.RequireAuth).Delete(
		"/posts/{id}/comments",
		deleteHandler.HandleDelete)
	r.With(authMiddleware.RequireAuth).Delete(
		"/posts/{id}/comments/{commentId}",
		deleteHandler.HandleDelete)
}
