package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/model"
)

// TaskRepo implements TaskRepository using PostgreSQL.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

// Create inserts a new task row.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (id, user_id, description)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, t.ID, t.UserID, t.Description)
	return err
}

// GetByID selects a task by ID.
func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	const q = `
SELECT id, user_id, description, created_at, updated_at
FROM tasks WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var t model.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &t, nil
}

// List selects all tasks, newest first.
func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	const q = `
SELECT id, user_id, description, created_at, updated_at
FROM tasks ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update persists the task description.
func (r *TaskRepo) Update(ctx context.Context, t *model.Task) error {
	const q = `
UPDATE tasks
SET description = $2, updated_at = now()
WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, t.ID, t.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a task row.
func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM tasks WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
