package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
	"github.com/mathewar/apty/internal/server/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memSessionStore struct {
	sessions map[string]*auth.Session
}

func (m *memSessionStore) Create(_ context.Context, s *auth.Session, _ time.Duration) (string, error) {
	id := uuid.NewString()
	m.sessions[id] = s
	return id, nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*auth.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func TestSession(t *testing.T) {
	t.Parallel()

	store := &memSessionStore{sessions: map[string]*auth.Session{}}
	sessionID, err := store.Create(context.Background(), &auth.Session{
		UserID: uuid.New(),
		Email:  "board@coop.test",
		Role:   auth.RoleAdmin,
	}, time.Hour)
	require.NoError(t, err)

	token, err := auth.IssueSessionToken(testSecret, sessionID, time.Hour)
	require.NoError(t, err)

	var seen *auth.Principal
	handler := middleware.Session(testSecret, store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	do := func(cookie *http.Cookie) *auth.Principal {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		return seen
	}

	t.Run("valid cookie attaches principal", func(t *testing.T) {
		p := do(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		require.NotNil(t, p)
		assert.Equal(t, "board@coop.test", p.Email)
		assert.True(t, p.HasPermission(auth.PermUsersWrite))
	})

	t.Run("no cookie proceeds anonymously", func(t *testing.T) {
		assert.Nil(t, do(nil))
	})

	t.Run("garbage token proceeds anonymously", func(t *testing.T) {
		assert.Nil(t, do(&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-token"}))
	})

	t.Run("wrong signing secret proceeds anonymously", func(t *testing.T) {
		forged, err := auth.IssueSessionToken("ffffffffffffffffffffffffffffffff", sessionID, time.Hour)
		require.NoError(t, err)
		assert.Nil(t, do(&http.Cookie{Name: middleware.SessionCookieName, Value: forged}))
	})

	t.Run("deleted session proceeds anonymously", func(t *testing.T) {
		evictedID, err := store.Create(context.Background(), &auth.Session{Role: auth.RoleResident}, time.Hour)
		require.NoError(t, err)
		evicted, err := auth.IssueSessionToken(testSecret, evictedID, time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Delete(context.Background(), evictedID))

		assert.Nil(t, do(&http.Cookie{Name: middleware.SessionCookieName, Value: evicted}))
	})
}
