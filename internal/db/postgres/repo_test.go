package postgres

import (
	"Agora/internal/core/comments"
	"Agora/internal/core/counters"
	"Agora/internal/core/likes"
	"Agora/internal/core/posts"
	"Agora/internal/core/users"
	"Agora/internal/db/migrations"
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL and runs the embedded migrations.
// Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, migrations.Dir), "Failed to run migrations")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// createTestPost inserts a live post and removes it with its likes and
// comments when the test ends
func createTestPost(t *testing.T, db *sql.DB, authorID string) *posts.Post {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	post := &posts.Post{
		ID:                uuid.NewString(),
		AuthorID:          authorID,
		DisplayNamePublic: "Tester",
		Content:           "hello",
		ImageURLs:         []string{"https://media.test/a.png"},
		Visibility:        posts.VisibilityPublic,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))

	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM likes WHERE post_id = $1", post.ID)
		_, _ = db.Exec("DELETE FROM comments WHERE post_id = $1", post.ID)
		_, _ = db.Exec("DELETE FROM posts WHERE id = $1", post.ID)
	})
	return post
}

func TestPostRepo_CreateGetSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, db, "author-1")

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.AuthorID, got.AuthorID)
	assert.Equal(t, post.ImageURLs, got.ImageURLs)
	assert.Equal(t, posts.VisibilityPublic, got.Visibility)
	assert.False(t, got.Deleted)

	require.NoError(t, repo.SoftDelete(ctx, post.ID))
	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	assert.ErrorIs(t, repo.SoftDelete(ctx, post.ID), posts.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestLikeRepo_UniquePerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db, "author-1")

	require.NoError(t, repo.Create(ctx, &likes.Like{PostID: post.ID, UserID: "u1", CreatedAt: time.Now()}))
	err := repo.Create(ctx, &likes.Like{PostID: post.ID, UserID: "u1", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, likes.ErrAlreadyLiked)

	n, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	removed, err := repo.Delete(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.GetByPostAndUser(ctx, post.ID, "u1")
	assert.ErrorIs(t, err, likes.ErrLikeNotFound)
}

func TestCommentRepo_OrderingAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db, "author-1")

	at := time.Now().UTC().Truncate(time.Microsecond)
	first := &comments.Comment{ID: uuid.NewString(), PostID: post.ID, UserID: "u1", Content: "first", CreatedAt: at}
	second := &comments.Comment{ID: uuid.NewString(), PostID: post.ID, UserID: "u2", Content: "second", CreatedAt: at}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.Seq, first.Seq)

	list, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	removed, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, comments.ErrCommentNotFound)
}

func TestCounterStore_AtomicFloor(t *testing.T) {
	db := setupTestDB(t)
	store := NewCounterStore(db)
	ctx := context.Background()
	post := createTestPost(t, db, "author-1")

	n, err := store.AdjustCounter(ctx, post.ID, counters.Likes, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.AdjustCounter(ctx, post.ID, counters.Likes, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = store.AdjustCounter(ctx, uuid.NewString(), counters.Comments, 1)
	assert.ErrorIs(t, err, counters.ErrPostNotFound)

	_, err = store.AdjustCounter(ctx, post.ID, counters.Field("deleted"), 1)
	assert.ErrorIs(t, err, counters.ErrUnknownField)
}

func TestCounterStore_Recount(t *testing.T) {
	db := setupTestDB(t)
	store := NewCounterStore(db)
	ctx := context.Background()
	post := createTestPost(t, db, "author-1")

	require.NoError(t, NewLikeRepository(db).Create(ctx, &likes.Like{PostID: post.ID, UserID: "u1", CreatedAt: time.Now()}))
	_, err := db.Exec("UPDATE posts SET likes_count = 9 WHERE id = $1", post.ID)
	require.NoError(t, err)

	counts, err := store.RecountCounters(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.LikesCount)
	assert.Equal(t, 0, counts.CommentsCount)

	ids, err := store.ListPostIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, post.ID)
}

func TestUserRepo_UpsertAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	id := "user-" + uuid.NewString()
	t.Cleanup(func() { _, _ = db.Exec("DELETE FROM users WHERE id = $1", id) })

	require.NoError(t, repo.Upsert(ctx, &users.User{ID: id, Username: "Tester-" + id[5:13], DisplayName: "T"}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "T", got.DisplayName)
	assert.Nil(t, got.PhotoURL)

	got, err = repo.GetByUsername(ctx, "  tester-"+id[5:13]+" ")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = repo.GetByID(ctx, "missing-"+id)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}
