package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"Agora/internal/core/errs"
	"Agora/internal/core/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestPublicName(t *testing.T) {
	assert.Equal(t, "Ada", PublicName("Ada", "ada"))
	assert.Equal(t, "ada", PublicName("   ", "ada"))
	assert.Equal(t, "User", PublicName("", ""))
	assert.Equal(t, "User", PublicName())
}

func TestResolvePublicName_UsesCallerDisplayNameWithoutLookup(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, nil)

	name, err := service.ResolvePublicName(context.Background(), &identity.Caller{ID: "u1", DisplayName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestResolvePublicName_FallbackChain(t *testing.T) {
	tests := []struct {
		user *User
		name string
		want string
	}{
		{name: "directory display name", user: &User{ID: "u1", DisplayName: "Grace", Username: "grace"}, want: "Grace"},
		{name: "directory username", user: &User{ID: "u1", Username: "grace"}, want: "grace"},
		{name: "literal fallback", user: &User{ID: "u1"}, want: "User"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("GetByID", mock.Anything, "u1").Return(tc.user, nil)
			service := NewUserService(repo, nil)

			name, err := service.ResolvePublicName(context.Background(), &identity.Caller{ID: "u1"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, name)
			repo.AssertExpectations(t)
		})
	}
}

func TestResolvePublicName_UnknownUserFallsBackToClaims(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(nil, ErrUserNotFound)
	service := NewUserService(repo, nil)

	name, err := service.ResolvePublicName(context.Background(), &identity.Caller{ID: "u1", Username: "claims_name"})
	require.NoError(t, err)
	assert.Equal(t, "claims_name", name)
}

func TestResolvePublicName_RepositoryFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("connection reset"))
	service := NewUserService(repo, nil)

	_, err := service.ResolvePublicName(context.Background(), &identity.Caller{ID: "u1"})
	require.Error(t, err)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
}

func TestGetProfile_NormalizesUsername(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := new(MockUserRepository)
	repo.On("GetByUsername", mock.Anything, "ada").Return(&User{
		ID:          "u1",
		Username:    "ada",
		DisplayName: "Ada",
		Email:       "ada@example.com",
		Bio:         "hi",
		CreatedAt:   created,
	}, nil)
	service := NewUserService(repo, nil)

	profile, err := service.GetProfile(context.Background(), "  ADA ")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.Equal(t, "ada", profile.Username)
	assert.Equal(t, created, profile.CreatedAt)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, ErrUserNotFound)
	service := NewUserService(repo, nil)

	_, err := service.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestGetProfile_BlankUsername(t *testing.T) {
	service := NewUserService(new(MockUserRepository), nil)

	_, err := service.GetProfile(context.Background(), "   ")
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestGetSelf(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{ID: "u1", Username: "ada", Email: "ada@example.com"}, nil)
	service := NewUserService(repo, nil)

	self, err := service.GetSelf(context.Background(), &identity.Caller{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", self.Email)

	_, err = service.GetSelf(context.Background(), nil)
	assert.True(t, errs.Is(err, errs.KindAuthRequired))
}

func TestCachingRepository_CachesHits(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{ID: "u1", DisplayName: "Ada"}, nil).Once()
	cached := NewCachingRepository(repo, 10, nil)

	for i := 0; i < 3; i++ {
		user, err := cached.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", user.DisplayName)
	}
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCachingRepository_DoesNotCacheMisses(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(nil, ErrUserNotFound)
	cached := NewCachingRepository(repo, 10, nil)

	_, err := cached.GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = cached.GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	repo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestCachingRepository_UpsertEvicts(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{ID: "u1"}, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	cached := NewCachingRepository(repo, 10, nil)

	_, err := cached.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NoError(t, cached.Upsert(context.Background(), &User{ID: "u1"}))
	_, err = cached.GetByID(context.Background(), "u1")
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetByID", 2)
}
