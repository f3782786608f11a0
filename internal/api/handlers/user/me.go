package user

import (
	"net/http"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/users"
)

// MeHandler serves the caller's own profile
type MeHandler struct {
	service users.UserService
}

// NewMeHandler creates a new me handler
func NewMeHandler(service users.UserService) *MeHandler {
	return &MeHandler{service: service}
}

// HandleMe handles GET /api/me
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	self, err := h.service.GetSelf(r.Context(), middleware.GetCaller(r))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ProfileResponse{
		Message: "User Profile fetched successfully",
		User:    self,
	})
}
