package routes

import (
	"Agora/internal/api/handlers/like"
	"Agora/internal/api/middleware"
	"Agora/internal/core/likes"

	"github.com/go-chi/chi/v5"
)

// RegisterLikeRoutes registers like endpoints on the router
func RegisterLikeRoutes(r chi.Router, service likes.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	toggleHandler := like.NewToggleHandler(service)
	stateHandler := like.NewStateHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/posts/{id}/like", toggleHandler.HandleToggle)

	// Anonymous viewers get liked=false, so a token is optional here
	r.With(authMiddleware.OptionalAuth).Get("/posts/{id}/like", stateHandler.HandleState)
}
