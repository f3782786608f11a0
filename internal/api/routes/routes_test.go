package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Agora/internal/api/middleware"
	"Agora/internal/api/routes"
	"Agora/internal/core/comments"
	"Agora/internal/core/counters"
	"Agora/internal/core/identity"
	"Agora/internal/core/likes"
	"Agora/internal/core/posts"
	"Agora/internal/core/users"
	"Agora/internal/db/memory"
	"Agora/internal/events"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	reconciler := counters.NewReconciler(store, nil)
	publisher := events.NopPublisher{}

	userService := users.NewUserService(store.Users(), nil)
	postService := posts.NewPostService(store.Posts(), userService, publisher, posts.Config{
		MediaBaseURL: "https://media.example/",
	}, nil)
	likeService := likes.NewService(store.Likes(), store.Posts(), reconciler, publisher, nil)
	commentService := comments.NewCommentService(store.Comments(), store.Posts(), reconciler, publisher, nil)
	auth := middleware.NewJWTAuthMiddleware(testSecret, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		routes.RegisterPostRoutes(r, postService, auth)
		routes.RegisterLikeRoutes(r, likeService, auth)
		routes.RegisterCommentRoutes(r, commentService, auth)
		routes.RegisterUserRoutes(r, userService, auth)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := middleware.IssueToken(testSecret, &identity.Caller{ID: userID, DisplayName: userID}, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, server *httptest.Server, method, path, tok, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestPostLifecycle(t *testing.T) {
	server := newTestServer(t)
	alice := token(t, "alice")
	bob := token(t, "bob")

	status, _ := do(t, server, http.MethodPost, "/api/posts", "", `{"content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, created := do(t, server, http.MethodPost, "/api/posts", alice, `{"content":"hi"}`)
	require.Equal(t, http.StatusCreated, status)
	postID := created["id"].(string)
	assert.Equal(t, "alice", created["displayNamePublic"])
	assert.NotContains(t, created, "authorId")

	status, got := do(t, server, http.MethodGet, "/api/posts/"+postID, "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hi", got["content"])

	status, _ = do(t, server, http.MethodDelete, "/api/posts/"+postID, bob, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, deleted := do(t, server, http.MethodDelete, "/api/posts/"+postID, alice, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Post deleted successfully", deleted["message"])

	status, _ = do(t, server, http.MethodGet, "/api/posts/"+postID, "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLikeAndCommentFlow(t *testing.T) {
	server := newTestServer(t)
	alice := token(t, "alice")
	bob := token(t, "bob")

	_, created := do(t, server, http.MethodPost, "/api/posts", alice, `{"content":"hi","isAnonymous":"true"}`)
	postID := created["id"].(string)
	assert.Equal(t, posts.AnonymousName, created["displayNamePublic"])

	status, liked := do(t, server, http.MethodPost, "/api/posts/"+postID+"/like", bob, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, liked["liked"])
	assert.EqualValues(t, 1, liked["likesCount"])

	_, state := do(t, server, http.MethodGet, "/api/posts/"+postID+"/like", "", "")
	assert.Equal(t, false, state["liked"])
	assert.EqualValues(t, 1, state["likesCount"])

	_, state = do(t, server, http.MethodGet, "/api/posts/"+postID+"/like", bob, "")
	assert.Equal(t, true, state["liked"])

	status, comment := do(t, server, http.MethodPost, "/api/posts/"+postID+"/comments", bob, `{"content":"nice"}`)
	require.Equal(t, http.StatusCreated, status)
	commentID := comment["id"].(string)

	status, list := do(t, server, http.MethodGet, "/api/posts/"+postID+"/comments", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list["comments"], 1)

	status, removed := do(t, server, http.MethodDelete, "/api/posts/"+postID+"/comments?commentId="+commentID, alice, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "postOwner", removed["deletedBy"])
	assert.EqualValues(t, 0, removed["commentsCount"])

	status, _ = do(t, server, http.MethodDelete, "/api/posts/"+postID+"/comments/"+commentID, alice, "")
	assert.Equal(t, http.StatusNotFound, status)

	_, got := do(t, server, http.MethodGet, "/api/posts/"+postID, "", "")
	assert.EqualValues(t, 1, got["likesCount"])
	assert.EqualValues(t, 0, got["commentsCount"])
}

func TestUserRoutes(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, server, http.MethodGet, "/api/users/nobody", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["error"])

	status, _ = do(t, server, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
