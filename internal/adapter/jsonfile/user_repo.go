package jsonfile

import (
	"context"
	"path/filepath"

	"taskhub/internal/domain"
)

// UserRepo stores registered usernames in users.json under the data dir.
type UserRepo struct {
	col *Collection[domain.User]
}

// NewUserRepo creates a UserRepo rooted at dataDir.
func NewUserRepo(dataDir string) *UserRepo {
	return &UserRepo{col: NewCollection[domain.User](filepath.Join(dataDir, "users.json"))}
}

var _ domain.UserRepository = (*UserRepo)(nil)

// List returns all registered users in file order.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.col.Load()
}

// GetByUsername returns the user, or (nil, nil) when unregistered.
// Usernames are case-sensitive.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create appends the username and rewrites the file. Duplicate detection
// is the caller's responsibility.
func (r *UserRepo) Create(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	u := domain.User{Username: username}
	if err := r.col.Save(append(users, u)); err != nil {
		return nil, err
	}
	return &u, nil
}
