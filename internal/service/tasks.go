package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/model"
	"github.com/taskboard/server/internal/repository"
)

const maxDescriptionLen = 1000

// TaskService defines operations over tasks with role and ownership checks.
type TaskService interface {
	// Create makes a new task owned by the caller. Role `user` only.
	Create(ctx context.Context, ident model.Identity, description string) (*model.Task, error)
	// List returns all tasks, newest first.
	List(ctx context.Context) ([]model.Task, error)
	// Get returns a task by id.
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	// Update changes the description. Owner only; existence is checked first.
	Update(ctx context.Context, ident model.Identity, id uuid.UUID, description string) (*model.Task, error)
	// Delete removes a task. Owner only; existence is checked first.
	Delete(ctx context.Context, ident model.Identity, id uuid.UUID) error
}

type TaskServiceImpl struct {
	tasks repository.TaskRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(tasks repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks}
}

// Create validates input and inserts a task for the caller.
func (s *TaskServiceImpl) Create(ctx context.Context, ident model.Identity, description string) (*model.Task, error) {
	if err := RequireRole(ident, model.RoleUser); err != nil {
		return nil, err
	}
	if err := validateText(description); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Task{ID: id, UserID: ident.UserID, Description: description}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tasks, newest first.
func (s *TaskServiceImpl) List(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}

// Get returns a task by id.
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Update changes the description of the caller's own task.
func (s *TaskServiceImpl) Update(ctx context.Context, ident model.Identity, id uuid.UUID, description string) (*model.Task, error) {
	if err := validateText(description); err != nil {
		return nil, err
	}
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err // NotFound before ownership
	}
	if err := RequireOwner(ident, t); err != nil {
		return nil, err
	}
	t.Description = description
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the caller's own task.
func (s *TaskServiceImpl) Delete(ctx context.Context, ident model.Identity, id uuid.UUID) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err // NotFound before ownership
	}
	if err := RequireOwner(ident, t); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func validateText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: empty text", errs.ErrValidation)
	}
	if len(text) > maxDescriptionLen {
		return fmt.Errorf("%w: text longer than %d", errs.ErrValidation, maxDescriptionLen)
	}
	return nil
}
