package jsonfile

import (
	"context"
	"path/filepath"

	"taskhub/internal/domain"
)

// TaskRepo stores tasks in a single tasks.json file under the data dir.
type TaskRepo struct {
	col *Collection[domain.Task]
}

// NewTaskRepo creates a TaskRepo rooted at dataDir.
func NewTaskRepo(dataDir string) *TaskRepo {
	return &TaskRepo{col: NewCollection[domain.Task](filepath.Join(dataDir, "tasks.json"))}
}

var _ domain.TaskRepository = (*TaskRepo)(nil)

// ListForOwner returns username's tasks in file (insertion) order.
func (r *TaskRepo) ListForOwner(ctx context.Context, username string) ([]domain.Task, error) {
	tasks, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.User == username {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create appends the task and rewrites the file.
func (r *TaskRepo) Create(ctx context.Context, t domain.Task) error {
	tasks, err := r.col.Load()
	if err != nil {
		return err
	}
	return r.col.Save(append(tasks, t))
}

// GetByID scans the full collection; returns (nil, nil) when unmatched.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

// Update replaces the record whose id matches. When nothing matches the
// file is rewritten unchanged, a silent no-op.
func (r *TaskRepo) Update(ctx context.Context, t domain.Task) error {
	tasks, err := r.col.Load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			break
		}
	}
	return r.col.Save(tasks)
}

// Delete removes the record whose id matches; no-op when absent.
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tasks, err := r.col.Load()
	if err != nil {
		return err
	}
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return r.col.Save(out)
}
