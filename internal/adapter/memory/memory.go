// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"taskhub/internal/domain"
)

// DB implements the domain repositories in memory.
type DB struct {
	mu       sync.Mutex
	tasks    []domain.Task
	users    []domain.User
	sessions map[string]*domain.Session
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.TaskRepository = (*DB)(nil)
var _ domain.UserRepository = (*UserRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- TaskRepository ---

// ListForOwner returns username's tasks in insertion order.
func (db *DB) ListForOwner(ctx context.Context, username string) ([]domain.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Task, 0, len(db.tasks))
	for _, t := range db.tasks {
		if t.User == username {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create appends a task.
func (db *DB) Create(ctx context.Context, t domain.Task) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.tasks = append(db.tasks, t)
	return nil
}

// GetByID returns the task, or (nil, nil) when unmatched.
func (db *DB) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.tasks {
		if db.tasks[i].ID == id {
			// copy so callers cannot mutate stored state
			t := db.tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

// Update replaces the task whose id matches; no-op when unmatched.
func (db *DB) Update(ctx context.Context, t domain.Task) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.tasks {
		if db.tasks[i].ID == t.ID {
			db.tasks[i] = t
			return nil
		}
	}
	return nil
}

// Delete removes the task whose id matches; no-op when unmatched.
func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.tasks {
		if db.tasks[i].ID == id {
			db.tasks = append(db.tasks[:i], db.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- UserRepository ---

// UserRepo implements user persistence on the in-memory DB.
type UserRepo struct {
	db *DB
}

// NewUserRepo wraps the DB as a UserRepository.
func (db *DB) NewUserRepo() *UserRepo {
	return &UserRepo{db: db}
}

// List returns all registered users.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.User, len(r.db.users))
	copy(out, r.db.users)
	return out, nil
}

// GetByUsername retrieves a user by username, (nil, nil) when absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.users {
		if r.db.users[i].Username == username {
			u := r.db.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// Create appends a username.
func (r *UserRepo) Create(ctx context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u := domain.User{Username: username}
	r.db.users = append(r.db.users, u)
	return &u, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence on the in-memory DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps the DB as a SessionRepository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Get retrieves a session by id, (nil, nil) when absent.
func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Put stores the session record.
func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cp := *s
	r.db.sessions[s.ID] = &cp
	return nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, id)
	return nil
}

// DeleteExpired removes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
