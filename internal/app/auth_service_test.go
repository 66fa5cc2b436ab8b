package app_test

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/app"
	"taskhub/internal/domain"
)

type mockUserRepo struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	getFn    func(ctx context.Context, username string) (*domain.User, error)
	createFn func(ctx context.Context, username string) (*domain.User, error)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username)
	}
	return &domain.User{Username: username}, nil
}

type mockSessionRepo struct {
	sessions map[string]*domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	if s, ok := m.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *mockSessionRepo) Put(ctx context.Context, s *domain.Session) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	for k, v := range m.sessions {
		if now.After(v.ExpiresAt) {
			delete(m.sessions, k)
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	registered := map[string]bool{"alice": true}
	users := &mockUserRepo{
		getFn: func(_ context.Context, name string) (*domain.User, error) {
			if registered[name] {
				return &domain.User{Username: name}, nil
			}
			return nil, nil
		},
		createFn: func(_ context.Context, name string) (*domain.User, error) {
			registered[name] = true
			return &domain.User{Username: name}, nil
		},
	}
	svc := app.NewAuthService(users, newMockSessionRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"new user", "bob", nil},
		{"duplicate", "alice", app.ErrUserExists},
		{"blank", "", app.ErrEmptyUsername},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Register(ctx, tc.username); err != tc.wantErr {
				t.Fatalf("Register(%q) = %v, want %v", tc.username, err, tc.wantErr)
			}
		})
	}

	// Registering bob twice now fails.
	if err := svc.Register(ctx, "bob"); err != app.ErrUserExists {
		t.Fatalf("second Register(bob) = %v, want ErrUserExists", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, newMockSessionRepo())
	sess := &domain.Session{ID: "s1"}

	if err := svc.Login(context.Background(), sess, "bob"); err != app.ErrUnknownUser {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if sess.LoggedIn() {
		t.Error("session must stay anonymous after a failed login")
	}
}

func TestLoginAttachesUsername(t *testing.T) {
	users := &mockUserRepo{
		getFn: func(_ context.Context, name string) (*domain.User, error) {
			if name == "alice" {
				return &domain.User{Username: "alice"}, nil
			}
			return nil, nil
		},
	}
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(users, sessions)
	sess := &domain.Session{ID: "s1"}

	if err := svc.Login(context.Background(), sess, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Username != "alice" {
		t.Fatalf("expected username attached, got %q", sess.Username)
	}
	stored, _ := sessions.Get(context.Background(), "s1")
	if stored == nil || stored.Username != "alice" {
		t.Fatal("login must persist the session record")
	}
	if !stored.ExpiresAt.After(time.Now()) {
		t.Error("login must slide the expiry forward")
	}
}

func TestLogoutKeepsSessionRecord(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(&mockUserRepo{}, sessions)
	ctx := context.Background()

	sess := &domain.Session{ID: "s1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	if err := sessions.Put(ctx, sess); err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := sessions.Get(ctx, "s1")
	if stored == nil {
		t.Fatal("logout must not destroy the session record")
	}
	if stored.LoggedIn() {
		t.Error("logout must clear the username")
	}
}

func TestEnsureSessionCreatesWhenMissing(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(&mockUserRepo{}, sessions)
	ctx := context.Background()

	sess, err := svc.EnsureSession(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a generated session id")
	}
	if sess.LoggedIn() {
		t.Error("fresh session must be anonymous")
	}
	if stored, _ := sessions.Get(ctx, sess.ID); stored == nil {
		t.Error("fresh session must be persisted")
	}
}

func TestEnsureSessionReturnsLiveSession(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(&mockUserRepo{}, sessions)
	ctx := context.Background()

	orig := &domain.Session{ID: "s1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	_ = sessions.Put(ctx, orig)

	sess, err := svc.EnsureSession(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID != "s1" || sess.Username != "alice" {
		t.Fatalf("expected the stored session back, got %+v", sess)
	}
}

func TestEnsureSessionReplacesExpired(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := app.NewAuthService(&mockUserRepo{}, sessions)
	ctx := context.Background()

	_ = sessions.Put(ctx, &domain.Session{ID: "old", Username: "alice", ExpiresAt: time.Now().Add(-time.Minute)})

	sess, err := svc.EnsureSession(ctx, "old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "old" {
		t.Fatal("expired session must be replaced")
	}
	if sess.LoggedIn() {
		t.Error("replacement session must be anonymous")
	}
	if stale, _ := sessions.Get(ctx, "old"); stale != nil {
		t.Error("expired record must be deleted on read")
	}
}

func TestLoginWithUserAutoRegisters(t *testing.T) {
	registered := map[string]bool{}
	users := &mockUserRepo{
		getFn: func(_ context.Context, name string) (*domain.User, error) {
			if registered[name] {
				return &domain.User{Username: name}, nil
			}
			return nil, nil
		},
		createFn: func(_ context.Context, name string) (*domain.User, error) {
			registered[name] = true
			return &domain.User{Username: name}, nil
		},
	}
	svc := app.NewAuthService(users, newMockSessionRepo())
	sess := &domain.Session{ID: "s1"}

	if err := svc.LoginWithUser(context.Background(), sess, "carol@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !registered["carol@example.com"] {
		t.Error("unknown SSO user must be auto-registered")
	}
	if sess.Username != "carol@example.com" {
		t.Errorf("expected username attached, got %q", sess.Username)
	}
}
