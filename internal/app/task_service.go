package app

import (
	"context"
	"strconv"
	"sync"
	"time"

	"taskhub/internal/domain"
)

// TaskDraft carries the caller-supplied fields for a new task.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      string
}

// TaskEdit carries a partial update. Empty fields keep the stored value;
// status and owner are never touched by an edit.
type TaskEdit struct {
	Title          string
	Description    string
	DueDate        string
	Priority       string
	CompletionDate string
}

// TaskService encapsulates the task lifecycle use cases. Every operation
// is scoped to the owner whose session initiated it.
type TaskService struct {
	repo domain.TaskRepository
	ids  idSource
}

// NewTaskService creates a TaskService backed by the given repository.
func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns the owner's tasks in storage (insertion) order.
func (s *TaskService) List(ctx context.Context, username string) ([]domain.Task, error) {
	return s.repo.ListForOwner(ctx, username)
}

// Add creates a task owned by username. Status defaults to Pending when
// the draft leaves it blank. Fields are stored as given, unvalidated.
func (s *TaskService) Add(ctx context.Context, username string, draft TaskDraft) (domain.Task, error) {
	status := draft.Status
	if status == "" {
		status = domain.StatusPending
	}
	t := domain.Task{
		ID:          s.ids.next(),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Status:      status,
		User:        username,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Get returns the owner's task with the given id, or ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, username, id string) (*domain.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.User != username {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// Edit merges the provided fields over the stored task and persists the
// result. Status and owner survive any edit.
func (s *TaskService) Edit(ctx context.Context, username, id string, edit TaskEdit) error {
	t, err := s.Get(ctx, username, id)
	if err != nil {
		return err
	}
	if edit.Title != "" {
		t.Title = edit.Title
	}
	if edit.Description != "" {
		t.Description = edit.Description
	}
	if edit.DueDate != "" {
		t.DueDate = edit.DueDate
	}
	if edit.Priority != "" {
		t.Priority = edit.Priority
	}
	if edit.CompletionDate != "" {
		t.CompletionDate = edit.CompletionDate
	}
	return s.repo.Update(ctx, *t)
}

// Complete marks the task Completed. There is no transition guard: a
// later Cancel overwrites the status again.
func (s *TaskService) Complete(ctx context.Context, username, id string) error {
	return s.setStatus(ctx, username, id, domain.StatusCompleted)
}

// Cancel marks the task Cancelled.
func (s *TaskService) Cancel(ctx context.Context, username, id string) error {
	return s.setStatus(ctx, username, id, domain.StatusCancelled)
}

func (s *TaskService) setStatus(ctx context.Context, username, id, status string) error {
	t, err := s.Get(ctx, username, id)
	if err != nil {
		return err
	}
	t.Status = status
	return s.repo.Update(ctx, *t)
}

// Remove deletes the owner's task with the given id.
func (s *TaskService) Remove(ctx context.Context, username, id string) error {
	if _, err := s.Get(ctx, username, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// idSource issues task ids: wall-clock milliseconds as a decimal string,
// bumped past the last issued value so rapid sequential creations never
// collide. Ids remain sortable by creation order.
type idSource struct {
	mu   sync.Mutex
	last int64
}

func (g *idSource) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}
