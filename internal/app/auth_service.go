// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"time"

	"taskhub/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrUserExists indicates a registration attempt for a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrUnknownUser indicates a login attempt for an unregistered username.
	ErrUnknownUser = errors.New("user does not exist")
	// ErrTaskNotFound indicates that no task matched the requested id
	// within the caller's scope.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmptyUsername indicates a blank username on register or login.
	ErrEmptyUsername = errors.New("username must not be empty")
)

// SessionTTL is how long a session survives without activity.
const SessionTTL = time.Hour

// AuthService handles registration, login and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register records a new username. The registry keeps no other data.
func (s *AuthService) Register(ctx context.Context, username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}
	_, err = s.users.Create(ctx, username)
	return err
}

// EnsureSession returns the live session with the given id, or a fresh
// anonymous one when the id is empty, unknown or expired. Expired records
// are deleted on read. The caller must persist the returned session's id
// in the client cookie.
func (s *AuthService) EnsureSession(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			if time.Now().Before(sess.ExpiresAt) {
				return sess, nil
			}
			_ = s.sessions.Delete(ctx, id)
		}
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(SessionTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Touch slides the session's expiry forward and persists it.
func (s *AuthService) Touch(ctx context.Context, sess *domain.Session) error {
	sess.ExpiresAt = time.Now().Add(SessionTTL)
	return s.sessions.Put(ctx, sess)
}

// Login attaches username to the session. The username must already be
// registered; there are no passwords.
func (s *AuthService) Login(ctx context.Context, sess *domain.Session, username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUnknownUser
	}
	sess.Username = u.Username
	return s.Touch(ctx, sess)
}

// LoginWithUser attaches an externally authenticated username (e.g. via
// SSO), auto-registering it when unknown.
func (s *AuthService) LoginWithUser(ctx context.Context, sess *domain.Session, username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		if _, err := s.users.Create(ctx, username); err != nil {
			// Lost a race with a concurrent registration; the name exists now.
			if u, gerr := s.users.GetByUsername(ctx, username); gerr != nil || u == nil {
				return err
			}
		}
	}
	sess.Username = username
	return s.Touch(ctx, sess)
}

// Logout clears the username but keeps the session record alive.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	sess.Username = ""
	return s.sessions.Put(ctx, sess)
}

// SweepExpiredSessions deletes expired session records.
func (s *AuthService) SweepExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}
