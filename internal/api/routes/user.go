package routes

import (
	"Agora/internal/api/handlers/user"
	"Agora/internal/api/middleware"
	"Agora/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers profile endpoints on the router
func RegisterUserRoutes(r chi.Router, service users.UserService, authMiddleware *middleware.JWTAuthMiddleware) {
	profileHandler := user.NewGetProfileHandler(service)
	meHandler := user.NewMeHandler(service)

	r.Get("/users/{username}", profileHandler.HandleGetProfile)
	r.With(authMiddleware.RequireAuth).Get("/me", meHandler.HandleMe)
}
