package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memUserRepo is a map-backed user repository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// memSessionStore is a map-backed session store for service tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*auth.Session)}
}

func (s *memSessionStore) Create(_ context.Context, sess *auth.Session, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	cp := *sess
	s.sessions[id] = &cp
	return id, nil
}

func (s *memSessionStore) Get(_ context.Context, id string) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func newTestService() (*auth.Service, *memUserRepo, *memSessionStore) {
	users := newMemUserRepo()
	sessions := newMemSessionStore()
	return auth.NewService(users, sessions, testSecret, time.Hour), users, sessions
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults_to_resident_role", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()

		user, err := svc.Register(ctx, "Alice@Coop.Test ", "hunter2hunter2", nil, "")
		require.NoError(t, err)
		assert.Equal(t, "alice@coop.test", user.Email, "email is lowercased and trimmed")
		assert.Equal(t, auth.RoleResident, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	})

	t.Run("duplicate_email_rejected", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, "bob@coop.test", "hunter2hunter2", nil, "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "bob@coop.test", "otherpassword", nil, "")
		assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
	})
}

func TestLoginLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, sessions := newTestService()
	registered, err := svc.Register(ctx, "carol@coop.test", "hunter2hunter2", nil, auth.RoleAdmin)
	require.NoError(t, err)

	t.Run("wrong_password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "carol@coop.test", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@coop.test", "hunter2hunter2")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("round_trip", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "carol@coop.test", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		require.NotEmpty(t, token)

		// The token resolves back to a live session carrying the identity.
		sessionID, err := auth.ParseSessionToken(testSecret, token)
		require.NoError(t, err)
		sess, err := sessions.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, sess.UserID)
		assert.Equal(t, auth.RoleAdmin, sess.Role)

		// Logout invalidates the session.
		require.NoError(t, svc.Logout(ctx, token))
		_, err = sessions.Get(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("logout_with_garbage_token_is_noop", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, "not-a-token"))
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueSessionToken(testSecret, "session-123", time.Hour)
	require.NoError(t, err)

	id, err := auth.ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", id)

	t.Run("wrong_secret", func(t *testing.T) {
		t.Parallel()
		_, err := auth.ParseSessionToken("another-secret-another-secret-xx", token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		expired, err := auth.IssueSessionToken(testSecret, "session-456", -time.Minute)
		require.NoError(t, err)
		_, err = auth.ParseSessionToken(testSecret, expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
