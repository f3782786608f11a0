package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"Agora/internal/api/handlers"
	"Agora/internal/api/middleware"
	"Agora/internal/core/posts"
)

// maxCreateBodyBytes bounds the create request body
const maxCreateBodyBytes = 1 << 20

// FlexBool accepts a JSON boolean or the strings "true"/"false", which
// form-encoding clients send for checkboxes
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*b = false
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	if raw == "" {
		*b = false
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return errors.New("isAnonymous must be a boolean")
	}
	*b = FlexBool(v)
	return nil
}

type createRequest struct {
	Content     string           `json:"content"`
	Visibility  posts.Visibility `json:"visibility"`
	ImageURLs   []string         `json:"imageUrls"`
	IsAnonymous FlexBool         `json:"isAnonymous"`
}

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
// Request body: { "content": "...", "imageUrls": [...], "isAnonymous": bool, "visibility": "public" }
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBodyBytes)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "validation", "Request body too large (max 1MB)")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "validation", "Invalid request body")
		return
	}

	view, err := h.service.CreatePost(r.Context(), middleware.GetCaller(r), posts.CreatePostRequest{
		Content:     req.Content,
		ImageURLs:   req.ImageURLs,
		IsAnonymous: bool(req.IsAnonymous),
		Visibility:  req.Visibility,
	})
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
