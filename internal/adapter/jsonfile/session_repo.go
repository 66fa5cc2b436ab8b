package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskhub/internal/domain"
)

// SessionRepo keeps one JSON file per active session under its directory,
// named <id>.json. Expired files are removed by DeleteExpired and on read.
type SessionRepo struct {
	dir string
}

// NewSessionRepo creates the session directory if needed.
func NewSessionRepo(dir string) (*SessionRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	return &SessionRepo{dir: dir}, nil
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

// Get returns the session, or (nil, nil) when no file exists for the id.
func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	// Ids are generated server-side, but never trust one as a path.
	if id == "" || id != filepath.Base(id) || strings.ContainsAny(id, "/\\") {
		return nil, nil
	}
	data, err := os.ReadFile(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

// Put writes the session record, creating or overwriting its file.
func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if err := os.WriteFile(r.path(s.ID), data, 0o600); err != nil {
		return fmt.Errorf("write session %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes the session file; no-op when absent.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	err := os.Remove(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// DeleteExpired removes every session file whose record has expired.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		s, err := r.Get(ctx, id)
		if err != nil || s == nil {
			continue
		}
		if now.After(s.ExpiresAt) {
			_ = r.Delete(ctx, id)
		}
	}
	return nil
}
