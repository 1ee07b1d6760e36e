package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// KeyPrefix namespaces session entries in the store.
const KeyPrefix = "recruitiq_user:"

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials indicates a login with the wrong username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized indicates a missing, expired or unknown session token.
	ErrUnauthorized = errors.New("unauthorized")
)

// User is the record kept for an authenticated session.
type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Session is returned by a successful login.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Credential is the single account allowed to log in. When PasswordHash is
// set it is a bcrypt hash and Password is ignored.
type Credential struct {
	Username     string
	Password     string
	PasswordHash string
}

// Store is a key-value store with expiry.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ErrKeyNotFound is returned by a Store when the key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

// Service handles login, logout and token resolution.
type Service struct {
	cred   Credential
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new auth service.
func NewService(cred Credential, store Store, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{cred: cred, store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Login checks the credential and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if !s.check(username, password) {
		s.logger.Warn("login rejected", "username", username)
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     uuid.NewString(),
		User:      User{ID: "1", Username: username, IsAuthenticated: true},
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	data, err := json.Marshal(sess.User)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	if err := s.store.Set(ctx, KeyPrefix+sess.Token, data, s.ttl); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	s.logger.Info("login succeeded", "username", username)
	return sess, nil
}

// Logout ends the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, KeyPrefix+token); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Resolve returns the user behind a session token.
func (s *Service) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	data, err := s.store.Get(ctx, KeyPrefix+token)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	if !u.IsAuthenticated {
		return nil, ErrUnauthorized
	}
	return &u, nil
}

func (s *Service) check(username, password string) bool {
	if s.cred.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cred.Username)) == 1
	if s.cred.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(s.cred.PasswordHash), []byte(password))
		return userOK && err == nil
	}
	if s.cred.Password == "" {
		return false
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cred.Password)) == 1
	return userOK && passOK
}
