package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Agora/internal/core/errs"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		err       error
		name      string
		wantType  string
		wantMsg   string
		wantCode  int
	}{
		{name: "validation", err: errs.Validation("content", "Content too long"), wantCode: http.StatusBadRequest, wantType: "validation", wantMsg: "Content too long"},
		{name: "auth", err: errs.AuthRequired("Authentication required"), wantCode: http.StatusUnauthorized, wantType: "auth_required", wantMsg: "Authentication required"},
		{name: "forbidden", err: errs.Forbidden("You are not the owner of this post"), wantCode: http.StatusForbidden, wantType: "forbidden", wantMsg: "You are not the owner of this post"},
		{name: "not found wrapped", err: fmt.Errorf("load: %w", errs.NotFound("Post not found")), wantCode: http.StatusNotFound, wantType: "not_found", wantMsg: "Post not found"},
		{name: "conflict", err: errs.Conflict("Post already liked"), wantCode: http.StatusConflict, wantType: "conflict", wantMsg: "Post already liked"},
		{name: "unclassified", err: errors.New("pq: connection refused"), wantCode: http.StatusInternalServerError, wantType: "internal", wantMsg: "An internal error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteServiceError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["error"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}
