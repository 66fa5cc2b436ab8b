package postgres

import (
	"context"
	"database/sql"

	"taskhub/internal/domain"
)

var _ domain.TaskRepository = (*DB)(nil)

// ListForOwner returns username's tasks in insertion order.
func (d *DB) ListForOwner(ctx context.Context, username string) ([]domain.Task, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, title, description, due_date, priority, status, username, completion_date FROM tasks WHERE username=$1 ORDER BY seq;",
		username)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status, &t.User, &t.CompletionDate); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a new task.
func (d *DB) Create(ctx context.Context, t domain.Task) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO tasks (id, title, description, due_date, priority, status, username, completion_date) VALUES ($1,$2,$3,$4,$5,$6,$7,$8);",
		t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.User, t.CompletionDate)
	return err
}

// GetByID retrieves a task by id, (nil, nil) when unmatched.
func (d *DB) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, title, description, due_date, priority, status, username, completion_date FROM tasks WHERE id=$1;",
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status, &t.User, &t.CompletionDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the task whose id matches; no-op when unmatched.
func (d *DB) Update(ctx context.Context, t domain.Task) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE tasks SET title=$2, description=$3, due_date=$4, priority=$5, status=$6, username=$7, completion_date=$8 WHERE id=$1;",
		t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.User, t.CompletionDate)
	return err
}

// Delete removes a task by id; no-op when unmatched.
func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM tasks WHERE id=$1;", id)
	return err
}
