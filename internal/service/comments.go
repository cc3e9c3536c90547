package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/model"
	"github.com/taskboard/server/internal/repository"
)

// CommentService defines operations over comments with role and ownership checks.
type CommentService interface {
	// Create attaches a new comment to a task. Role `author` only.
	Create(ctx context.Context, ident model.Identity, taskID uuid.UUID, text string) (*model.Comment, error)
	// List returns comments newest first, optionally filtered by task.
	List(ctx context.Context, taskID *uuid.UUID) ([]model.Comment, error)
	// Get returns a comment by id.
	Get(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// Update changes the text. Owner only; existence is checked first.
	Update(ctx context.Context, ident model.Identity, id uuid.UUID, text string) (*model.Comment, error)
	// Delete removes a comment. Owner only; existence is checked first.
	Delete(ctx context.Context, ident model.Identity, id uuid.UUID) error
}

type CommentServiceImpl struct {
	comments repository.CommentRepository
	tasks    repository.TaskRepository
}

// NewCommentService constructs CommentService.
func NewCommentService(comments repository.CommentRepository, tasks repository.TaskRepository) *CommentServiceImpl {
	return &CommentServiceImpl{comments: comments, tasks: tasks}
}

// Create validates input, checks the target task exists and inserts a comment.
func (s *CommentServiceImpl) Create(ctx context.Context, ident model.Identity, taskID uuid.UUID, text string) (*model.Comment, error) {
	if err := RequireRole(ident, model.RoleAuthor); err != nil {
		return nil, err
	}
	if err := validateText(text); err != nil {
		return nil, err
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Comment{ID: id, TaskID: taskID, UserID: ident.UserID, Text: text}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns comments newest first, optionally filtered by task.
func (s *CommentServiceImpl) List(ctx context.Context, taskID *uuid.UUID) ([]model.Comment, error) {
	return s.comments.List(ctx, taskID)
}

// Get returns a comment by id.
func (s *CommentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

// Update changes the text of the caller's own comment.
func (s *CommentServiceImpl) Update(ctx context.Context, ident model.Identity, id uuid.UUID, text string) (*model.Comment, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err // NotFound before ownership
	}
	if err := RequireOwner(ident, c); err != nil {
		return nil, err
	}
	c.Text = text
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the caller's own comment.
func (s *CommentServiceImpl) Delete(ctx context.Context, ident model.Identity, id uuid.UUID) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err // NotFound before ownership
	}
	if err := RequireOwner(ident, c); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}
