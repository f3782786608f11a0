package routes

import (
	"Agora/internal/api/handlers/post"
	"Agora/internal/api/middleware"
	"Agora/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post endpoints on the router
// Reads are public; creation and deletion require a verified caller
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	// Initialize handlers
	createHandler := post.NewCreateHandler(service)
	getHandler := post.NewGetHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/posts", createHandler.HandleCreate)
	r.Get("/posts/{id}", getHandler.HandleGet)

	// Only the post's author can delete it
	r.With(authMiddleware.RequireAuth).Delete("/posts/{id}", deleteHandler.HandleDelete)
}
