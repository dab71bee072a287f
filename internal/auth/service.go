package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/mathewar/apty/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service provides login, logout and account management over the user
// repository and the session store.
type Service struct {
	users      domain.UserRepository
	sessions   SessionStore
	secret     string
	sessionTTL time.Duration
}

func NewService(users domain.UserRepository, sessions SessionStore, secret string, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		secret:     secret,
		sessionTTL: sessionTTL,
	}
}

// SessionTTL returns the configured session lifetime, used for cookie expiry.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }

// Register creates a new account. The default role is resident; only the
// admin user-management flow assigns other roles.
func (s *Service) Register(ctx context.Context, email, password string, residentID *uuid.UUID, role string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	if role == "" {
		role = RoleResident
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		ResidentID:   residentID,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return user, nil
}

// Login validates credentials, creates a server-side session and returns the
// user together with a signed session token for the cookie.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	sessionID, err := s.sessions.Create(ctx, &Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, s.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Login: %w", err)
	}

	token, err := IssueSessionToken(s.secret, sessionID, s.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("auth.Login: %w", err)
	}

	return user, token, nil
}

// Logout deletes the session behind the token. An invalid token is not an
// error; the caller holds no session either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	sessionID, err := ParseSessionToken(s.secret, token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	return nil
}

// SetPassword rehashes and stores a new password for the user.
func (s *Service) SetPassword(ctx context.Context, user *domain.User, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("auth.SetPassword: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("auth.SetPassword: %w", err)
	}
	return nil
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	saltHex, hashHex, ok := strings.Cut(encoded, "$")
	if !ok || saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
