package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openmarket/auctions/internal/shared/auth"
	"github.com/openmarket/auctions/internal/user/domain"
)

// memoryUserRepo is a concurrency-safe in-memory domain.UserRepository.
type memoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memoryUserRepo) Insert(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService() (AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(newMemoryUserRepo(), tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	service, tokens := newTestAuthService()
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "alice@example.com", "testpass123")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "testpass123", user.PasswordHash)

	token, loggedIn, err := service.Login(ctx, "alice", "testpass123")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, "bob", "bob@example.com", "testpass123")
	require.NoError(t, err)

	_, err = service.Register(ctx, "bob", "other@example.com", "testpass123")
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, "", "a@example.com", "pw")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Register(ctx, "carol", "c@example.com", "")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, "dave", "dave@example.com", "testpass123")
	require.NoError(t, err)

	_, _, err = service.Login(ctx, "dave", "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// unknown usernames fail the same way so existence is not revealed
	_, _, err = service.Login(ctx, "nobody", "testpass123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenManager_RejectsForgedToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("secret-a", time.Hour)
	other := auth.NewTokenManager("secret-b", time.Hour)

	token, err := tokens.Generate(uuid.New(), "mallory")
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
