// Package domain contains the core business entities and interfaces.
package domain

import "context"

// Task status literals as stored on disk.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	DueDate        string `json:"due_date,omitempty"`
	Priority       string `json:"priority,omitempty"`
	Status         string `json:"status"`
	User           string `json:"user"`
	CompletionDate string `json:"completion_date,omitempty"`
}

// TaskRepository defines the port for task persistence operations.
// Lookups that find nothing return (nil, nil); Update and Delete are
// silent no-ops when the id is unmatched.
type TaskRepository interface {
	ListForOwner(ctx context.Context, username string) ([]Task, error)
	Create(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, id string) error
}
