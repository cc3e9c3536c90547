package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/model"
)

// CommentRepo implements CommentRepository using PostgreSQL.
type CommentRepo struct{ db *DB }

// NewCommentRepo constructs a comment repository.
func NewCommentRepo(db *DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a new comment row.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	const q = `
INSERT INTO comments (id, task_id, user_id, text)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.TaskID, c.UserID, c.Text)
	return err
}

// GetByID selects a comment by ID.
func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const q = `
SELECT id, task_id, user_id, text, created_at, updated_at
FROM comments WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var c model.Comment
	if err := row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

// List selects comments newest first, optionally filtered by task.
func (r *CommentRepo) List(ctx context.Context, taskID *uuid.UUID) ([]model.Comment, error) {
	const qAll = `
SELECT id, task_id, user_id, text, created_at, updated_at
FROM comments ORDER BY created_at DESC`
	const qByTask = `
SELECT id, task_id, user_id, text, created_at, updated_at
FROM comments WHERE task_id=$1 ORDER BY created_at DESC`

	var rows pgx.Rows
	var err error
	if taskID != nil {
		rows, err = r.db.Pool.Query(ctx, qByTask, *taskID)
	} else {
		rows, err = r.db.Pool.Query(ctx, qAll)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persists the comment text.
func (r *CommentRepo) Update(ctx context.Context, c *model.Comment) error {
	const q = `
UPDATE comments
SET text = $2, updated_at = now()
WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, c.ID, c.Text)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a comment row.
func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM comments WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
