package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/model"
)

// TaskRepository provides CRUD access to tasks.
type TaskRepository interface {
	// Create inserts a new task.
	Create(ctx context.Context, t *model.Task) error
	// GetByID loads a task by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	// List returns all tasks, newest first.
	List(ctx context.Context) ([]model.Task, error)
	// Update persists the description of an existing task.
	Update(ctx context.Context, t *model.Task) error
	// Delete removes a task and, via FK cascade, its comments.
	Delete(ctx context.Context, id uuid.UUID) error
}
