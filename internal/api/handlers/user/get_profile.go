package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers"
	"Agora/internal/core/users"
)

// ProfileResponse wraps a profile view
type ProfileResponse struct {
	User    interface{} `json:"user"`
	Message string      `json:"message"`
}

// GetProfileHandler serves public profiles
type GetProfileHandler struct {
	service users.UserService
}

// NewGetProfileHandler creates a new profile handler
func NewGetProfileHandler(service users.UserService) *GetProfileHandler {
	return &GetProfileHandler{service: service}
}

// HandleGetProfile handles GET /api/users/{username}
func (h *GetProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ProfileResponse{
		Message: "User fetched successfully",
		User:    profile,
	})
}
