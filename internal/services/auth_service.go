package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/moizhassan7/crisp-cms/internal/content"
	"github.com/moizhassan7/crisp-cms/internal/store"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike; login responses never distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")

type session struct {
	username string
	expires  time.Time
}

// AuthService guards the admin panel. Users live in the adminUsers
// collection of the document store with bcrypt password hashes; sessions
// are opaque tokens held in memory with an expiry sweep, so a restart logs
// everyone out.
type AuthService struct {
	store  store.Store
	logger *zap.Logger
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]session

	now func() time.Time
}

func NewAuthService(st store.Store, ttl time.Duration, logger *zap.Logger) *AuthService {
	s := &AuthService{
		store:    st,
		logger:   logger.With(zap.String("service", "auth")),
		ttl:      ttl,
		sessions: make(map[string]session),
		now:      time.Now,
	}
	go s.sweep()
	return s
}

func (s *AuthService) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := s.now()
		s.mu.Lock()
		for token, sess := range s.sessions {
			if sess.expires.Before(now) {
				delete(s.sessions, token)
			}
		}
		s.mu.Unlock()
	}
}

// Login verifies the credentials and returns a new session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("Invalid password", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{username: username, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()

	s.logger.Info("Admin logged in", zap.String("username", username))
	return token, nil
}

// Validate reports whether a token belongs to a live session and for whom.
func (s *AuthService) Validate(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || sess.expires.Before(s.now()) {
		return "", false
	}
	return sess.username, true
}

// Logout drops the session; unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CreateUser stores a new admin login with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	if _, err := s.findUser(ctx, username); err == nil {
		return fmt.Errorf("user %s already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := content.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	doc, err := content.Encode(user)
	if err != nil {
		return err
	}
	if _, err := s.store.Add(ctx, content.CollectionAdminUsers, doc); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Info("Admin user created", zap.String("username", username))
	return nil
}

// findUser scans the adminUsers collection for a username. The collection
// holds a handful of logins, so a list-and-match keeps the store interface
// to plain collection operations.
func (s *AuthService) findUser(ctx context.Context, username string) (content.AdminUser, error) {
	records, err := s.store.List(ctx, content.CollectionAdminUsers, store.ListOptions{})
	if err != nil {
		return content.AdminUser{}, fmt.Errorf("failed to look up user: %w", err)
	}
	for _, rec := range records {
		user, err := content.Decode[content.AdminUser](rec.Data)
		if err != nil {
			continue
		}
		if user.Username == username {
			return user, nil
		}
	}
	s.logger.Warn("Unknown username", zap.String("username", username))
	return content.AdminUser{}, ErrInvalidCredentials
}
