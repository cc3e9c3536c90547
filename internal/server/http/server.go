// Package httpserver exposes the task board over HTTP using gin.
package httpserver

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskboard/server/internal/service"
)

// Server wires services into an HTTP router.
type Server struct {
	auth     service.AuthService
	users    service.UserService
	tasks    service.TaskService
	comments service.CommentService
	log      *zap.Logger
}

// New constructs the HTTP server facade.
func New(auth service.AuthService, users service.UserService, tasks service.TaskService, comments service.CommentService, log *zap.Logger) *Server {
	return &Server{auth: auth, users: users, tasks: tasks, comments: comments, log: log}
}

// Router builds the gin engine with middleware and all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log), Logging(s.log))

	// Public endpoints.
	r.POST("/auth/register", s.handleRegister)
	r.POST("/auth/login", s.handleLogin)
	r.POST("/auth/refresh", s.handleRefresh)
	r.POST("/users", s.handleRegister) // register's twin

	// Everything below requires a valid access token; per-operation role
	// requirements come from the route table in roles.go.
	auth := r.Group("", s.AccessGuard())

	auth.GET("/users", s.handleListUsers)
	auth.GET("/users/:id", s.handleGetUser)
	auth.PATCH("/users/:id", s.handleUpdateUser)
	auth.DELETE("/users/:id", s.handleDeleteUser)

	auth.POST("/tasks", s.RequireRoles(opTaskCreate), s.handleCreateTask)
	auth.GET("/tasks", s.handleListTasks)
	auth.GET("/tasks/:id", s.handleGetTask)
	auth.PATCH("/tasks/:id", s.handleUpdateTask)
	auth.DELETE("/tasks/:id", s.handleDeleteTask)

	auth.POST("/comments", s.RequireRoles(opCommentCreate), s.handleCreateComment)
	auth.GET("/comments", s.handleListComments)
	auth.GET("/comments/:id", s.handleGetComment)
	auth.PATCH("/comments/:id", s.handleUpdateComment)
	auth.DELETE("/comments/:id", s.handleDeleteComment)

	return r
}
