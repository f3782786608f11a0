package users

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachingRepository is a read-through LRU cache in front of a
// UserRepository. Only successful GetByID lookups are cached; misses and
// errors always reach the underlying repository.
type cachingRepository struct {
	base  UserRepository
	cache *lru.Cache[string, *User]
}

// NewCachingRepository wraps base with a bounded LRU cache keyed by user id
func NewCachingRepository(base UserRepository, size int, logger *slog.Logger) UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		size = 1000
	}
	cache, err := lru.New[string, *User](size)
	if err != nil {
		// Only reachable with a non-positive size, which is guarded above
		logger.Error("failed to create user cache, caching disabled", "error", err)
		return base
	}
	return &cachingRepository{base: base, cache: cache}
}

func (r *cachingRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if user, ok := r.cache.Get(id); ok {
		return user, nil
	}

	user, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Add(id, user)
	return user, nil
}

func (r *cachingRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.base.GetByUsername(ctx, username)
}

func (r *cachingRepository) Upsert(ctx context.Context, user *User) error {
	if err := r.base.Upsert(ctx, user); err != nil {
		return err
	}
	r.cache.Remove(user.ID)
	return nil
}
