package app_test

import (
	"context"
	"testing"

	"taskhub/internal/app"
	"taskhub/internal/domain"
)

type mockTaskRepo struct {
	listFn   func(ctx context.Context, username string) ([]domain.Task, error)
	createFn func(ctx context.Context, t domain.Task) error
	getFn    func(ctx context.Context, id string) (*domain.Task, error)
	updateFn func(ctx context.Context, t domain.Task) error
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockTaskRepo) ListForOwner(ctx context.Context, username string) ([]domain.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, username)
	}
	return nil, nil
}

func (m *mockTaskRepo) Create(ctx context.Context, t domain.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, t domain.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func TestAddDefaultsToPending(t *testing.T) {
	var created domain.Task
	repo := &mockTaskRepo{
		createFn: func(_ context.Context, tk domain.Task) error {
			created = tk
			return nil
		},
	}
	svc := app.NewTaskService(repo)

	got, err := svc.Add(context.Background(), "alice", app.TaskDraft{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("expected status Pending, got %q", got.Status)
	}
	if got.User != "alice" {
		t.Errorf("expected owner alice, got %q", got.User)
	}
	if got.ID == "" {
		t.Error("expected a generated id")
	}
	if created.ID != got.ID {
		t.Errorf("persisted task differs from returned one: %q vs %q", created.ID, got.ID)
	}
}

func TestAddIDsAreUniqueAndOrdered(t *testing.T) {
	svc := app.NewTaskService(&mockTaskRepo{})
	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 100; i++ {
		tk, err := svc.Add(context.Background(), "alice", app.TaskDraft{Title: "t"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[tk.ID] {
			t.Fatalf("duplicate id %q", tk.ID)
		}
		seen[tk.ID] = true
		if prev != "" && !(len(tk.ID) > len(prev) || (len(tk.ID) == len(prev) && tk.ID > prev)) {
			t.Fatalf("ids not ordered by creation: %q after %q", tk.ID, prev)
		}
		prev = tk.ID
	}
}

func TestGetScopedToOwner(t *testing.T) {
	repo := &mockTaskRepo{
		getFn: func(_ context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, User: "bob", Status: domain.StatusPending}, nil
		},
	}
	svc := app.NewTaskService(repo)

	if _, err := svc.Get(context.Background(), "alice", "1"); err != app.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "bob", "1"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := app.NewTaskService(&mockTaskRepo{})
	if _, err := svc.Get(context.Background(), "alice", "nope"); err != app.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestEditMergesOverExisting(t *testing.T) {
	stored := domain.Task{
		ID: "1", Title: "Old title", Description: "Old desc",
		DueDate: "2026-09-01", Priority: "Low",
		Status: domain.StatusPending, User: "alice",
	}
	var updated domain.Task
	repo := &mockTaskRepo{
		getFn: func(_ context.Context, _ string) (*domain.Task, error) {
			cp := stored
			return &cp, nil
		},
		updateFn: func(_ context.Context, tk domain.Task) error {
			updated = tk
			return nil
		},
	}
	svc := app.NewTaskService(repo)

	err := svc.Edit(context.Background(), "alice", "1", app.TaskEdit{Title: "New title", Priority: "High"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "New title" || updated.Priority != "High" {
		t.Errorf("provided fields not applied: %+v", updated)
	}
	if updated.Description != "Old desc" || updated.DueDate != "2026-09-01" {
		t.Errorf("omitted fields not preserved: %+v", updated)
	}
	if updated.Status != domain.StatusPending || updated.User != "alice" {
		t.Errorf("status/owner must survive an edit: %+v", updated)
	}
}

func TestEditOverwritesCompletionDate(t *testing.T) {
	var updated domain.Task
	repo := &mockTaskRepo{
		getFn: func(_ context.Context, _ string) (*domain.Task, error) {
			return &domain.Task{ID: "1", User: "alice", Status: domain.StatusCompleted, CompletionDate: "2026-08-01"}, nil
		},
		updateFn: func(_ context.Context, tk domain.Task) error {
			updated = tk
			return nil
		},
	}
	svc := app.NewTaskService(repo)

	if err := svc.Edit(context.Background(), "alice", "1", app.TaskEdit{CompletionDate: "2026-08-30"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CompletionDate != "2026-08-30" {
		t.Errorf("expected completion date overwritten, got %q", updated.CompletionDate)
	}
}

func TestCompleteThenCancelOverwritesStatus(t *testing.T) {
	stored := domain.Task{ID: "1", User: "alice", Status: domain.StatusPending}
	repo := &mockTaskRepo{
		getFn: func(_ context.Context, _ string) (*domain.Task, error) {
			cp := stored
			return &cp, nil
		},
		updateFn: func(_ context.Context, tk domain.Task) error {
			stored = tk
			return nil
		},
	}
	svc := app.NewTaskService(repo)
	ctx := context.Background()

	if err := svc.Complete(ctx, "alice", "1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if stored.Status != domain.StatusCompleted {
		t.Fatalf("expected Completed, got %q", stored.Status)
	}

	// No transition guard: cancelling a completed task still succeeds.
	if err := svc.Cancel(ctx, "alice", "1"); err != nil {
		t.Fatalf("cancel after complete: %v", err)
	}
	if stored.Status != domain.StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", stored.Status)
	}
}

func TestRemoveUnknownID(t *testing.T) {
	deleted := false
	repo := &mockTaskRepo{
		deleteFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := app.NewTaskService(repo)

	if err := svc.Remove(context.Background(), "alice", "nope"); err != app.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if deleted {
		t.Error("delete must not run for an unmatched id")
	}
}
