package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/taskboard/server/internal/model"
)

type createCommentRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type updateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentResponse(cm *model.Comment) commentResponse {
	return commentResponse{
		ID:        cm.ID.String(),
		TaskID:    cm.TaskID.String(),
		UserID:    cm.UserID.String(),
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func (s *Server) handleCreateComment(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id and text are required"})
		return
	}
	taskID, err := uuid.FromString(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed task_id"})
		return
	}
	cm, err := s.comments.Create(c.Request.Context(), ident, taskID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(cm))
}

func (s *Server) handleListComments(c *gin.Context) {
	var taskID *uuid.UUID
	if raw := c.Query("task_id"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed task_id"})
			return
		}
		taskID = &id
	}
	comments, err := s.comments.List(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cm, err := s.comments.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(cm))
}

func (s *Server) handleUpdateComment(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	cm, err := s.comments.Update(c.Request.Context(), ident, id, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(cm))
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.comments.Delete(c.Request.Context(), ident, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
