package domain

import (
	"context"
	"time"
)

// User is a registered identity. There are no passwords; knowing a
// registered username is sufficient to log in.
type User struct {
	Username string `json:"username"`
}

// Session is a server-side session record keyed by the opaque identifier
// carried in the client cookie. Username is empty until a login attaches
// one; logout clears it without destroying the record.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// LoggedIn reports whether a username is attached to the session.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Username != ""
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, username string) (*User, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}
