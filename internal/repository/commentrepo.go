package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/model"
)

// CommentRepository provides CRUD access to comments.
type CommentRepository interface {
	// Create inserts a new comment.
	Create(ctx context.Context, c *model.Comment) error
	// GetByID loads a comment by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// List returns comments newest first, optionally filtered by task.
	List(ctx context.Context, taskID *uuid.UUID) ([]model.Comment, error)
	// Update persists the text of an existing comment.
	Update(ctx context.Context, c *model.Comment) error
	// Delete removes a comment.
	Delete(ctx context.Context, id uuid.UUID) error
}
