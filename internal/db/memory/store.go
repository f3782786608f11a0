// Package memory is an in-process implementation of every repository.
// It backs the service tests and the server's DATABASE_URL=memory mode.
// All repositories returned by one Store share state under a single mutex,
// so the like ledger's uniqueness and the counter adjustments behave like
// their PostgreSQL counterparts under concurrency.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"Agora/internal/core/comments"
	"Agora/internal/core/counters"
	"Agora/internal/core/likes"
	"Agora/internal/core/posts"
	"Agora/internal/core/users"
)

type likeKey struct {
	postID string
	userID string
}

// Store holds posts, likes, comments and users
type Store struct {
	posts       map[string]*posts.Post
	likes       map[likeKey]*likes.Like
	comments    map[string]*comments.Comment
	users       map[string]*users.User
	mu          sync.Mutex
	likeSeq     int64
	commentSeq  int64
	failCounter error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		posts:    make(map[string]*posts.Post),
		likes:    make(map[likeKey]*likes.Like),
		comments: make(map[string]*comments.Comment),
		users:    make(map[string]*users.User),
	}
}

// Posts returns the post repository view of the store
func (s *Store) Posts() posts.Repository { return postRepo{s} }

// Likes returns the like ledger view of the store
func (s *Store) Likes() likes.Repository { return likeRepo{s} }

// Comments returns the comment repository view of the store
func (s *Store) Comments() comments.Repository { return commentRepo{s} }

// Users returns the user directory view of the store
func (s *Store) Users() users.UserRepository { return userRepo{s} }

// FailCounterWrites makes every AdjustCounter call return err until it is
// called again with nil. Ledger and comment writes are unaffected.
func (s *Store) FailCounterWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCounter = err
}

// AdjustCounter implements counters.Store
func (s *Store) AdjustCounter(_ context.Context, postID string, field counters.Field, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCounter != nil {
		return 0, s.failCounter
	}

	p, ok := s.posts[postID]
	if !ok {
		return 0, counters.ErrPostNotFound
	}

	var target *int
	switch field {
	case counters.Likes:
		target = &p.LikesCount
	case counters.Comments:
		target = &p.CommentsCount
	default:
		return 0, counters.ErrUnknownField
	}

	*target = max(0, *target+delta)
	return *target, nil
}

// RecountCounters implements counters.Store
func (s *Store) RecountCounters(_ context.Context, postID string) (*counters.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, counters.ErrPostNotFound
	}

	p.LikesCount = s.countLikesLocked(postID)
	p.CommentsCount = s.countCommentsLocked(postID)

	return &counters.Counts{
		PostID:        postID,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
	}, nil
}

// ListPostIDs implements counters.Store
func (s *Store) ListPostIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) countLikesLocked(postID string) int {
	n := 0
	for k := range s.likes {
		if k.postID == postID {
			n++
		}
	}
	return n
}

func (s *Store) countCommentsLocked(postID string) int {
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

type postRepo struct{ s *Store }

func (r postRepo) Create(_ context.Context, post *posts.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *post
	stored.ImageURLs = append([]string(nil), post.ImageURLs...)
	r.s.posts[post.ID] = &stored
	return nil
}

func (r postRepo) GetByID(_ context.Context, id string) (*posts.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	out := *p
	out.ImageURLs = append([]string(nil), p.ImageURLs...)
	return &out, nil
}

func (r postRepo) SoftDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok || p.Deleted {
		return posts.ErrNotFound
	}
	p.Deleted = true
	return nil
}

type likeRepo struct{ s *Store }

func (r likeRepo) Create(_ context.Context, like *likes.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := likeKey{postID: like.PostID, userID: like.UserID}
	if _, exists := r.s.likes[key]; exists {
		return likes.ErrAlreadyLiked
	}
	r.s.likeSeq++
	like.ID = r.s.likeSeq
	stored := *like
	r.s.likes[key] = &stored
	return nil
}

func (r likeRepo) GetByPostAndUser(_ context.Context, postID, userID string) (*likes.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.likes[likeKey{postID: postID, userID: userID}]
	if !ok {
		return nil, likes.ErrLikeNotFound
	}
	out := *l
	return &out, nil
}

func (r likeRepo) Delete(_ context.Context, postID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := likeKey{postID: postID, userID: userID}
	if _, ok := r.s.likes[key]; !ok {
		return false, nil
	}
	delete(r.s.likes, key)
	return true, nil
}

func (r likeRepo) CountByPost(_ context.Context, postID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countLikesLocked(postID), nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, comment *comments.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.commentSeq++
	comment.Seq = r.s.commentSeq
	stored := *comment
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r commentRepo) GetByID(_ context.Context, id string) (*comments.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, comments.ErrCommentNotFound
	}
	out := *c
	return &out, nil
}

func (r commentRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return false, nil
	}
	delete(r.s.comments, id)
	return true, nil
}

func (r commentRepo) ListByPost(_ context.Context, postID string) ([]*comments.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*comments.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Seq > out[j].Seq
	})
	return out, nil
}

func (r commentRepo) CountByPost(_ context.Context, postID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countCommentsLocked(postID), nil
}

type userRepo struct{ s *Store }

func (r userRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range r.s.users {
		if strings.ToLower(u.Username) == username {
			out := *u
			return &out, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (r userRepo) Upsert(_ context.Context, user *users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}
