package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/taskboard/server/internal/errs"
	"github.com/taskboard/server/internal/model"
	"github.com/taskboard/server/internal/service"
	"github.com/taskboard/server/internal/token"
)

// memUsers is an in-memory UserRepository for full-stack tests.
type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uuid.UUID]*model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Email == u.Email {
			return errs.ErrEmailTaken
		}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	for id, other := range m.byID {
		if id != u.ID && other.Email == u.Email {
			return errs.ErrEmailTaken
		}
	}
	e.Email, e.PasswordHash, e.Role = u.Email, u.PasswordHash, u.Role
	e.UpdatedAt = time.Now()
	return nil
}

func (m *memUsers) SetRefreshTokenHash(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.RefreshTokenHash = hash
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// memTasks is an in-memory TaskRepository.
type memTasks struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Task
}

func newMemTasks() *memTasks { return &memTasks{byID: map[uuid.UUID]*model.Task{}} }

func (m *memTasks) Create(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTasks) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) List(_ context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Task, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTasks) Update(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[t.ID]
	if !ok {
		return errs.ErrNotFound
	}
	e.Description = t.Description
	e.UpdatedAt = time.Now()
	return nil
}

func (m *memTasks) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// memComments is an in-memory CommentRepository.
type memComments struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Comment
}

func newMemComments() *memComments { return &memComments{byID: map[uuid.UUID]*model.Comment{}} }

func (m *memComments) Create(_ context.Context, c *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.byID[c.ID] = &cp
	return nil
}

func (m *memComments) GetByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memComments) List(_ context.Context, taskID *uuid.UUID) ([]model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Comment, 0, len(m.byID))
	for _, c := range m.byID {
		if taskID != nil && c.TaskID != *taskID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *memComments) Update(_ context.Context, c *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[c.ID]
	if !ok {
		return errs.ErrNotFound
	}
	e.Text = c.Text
	e.UpdatedAt = time.Now()
	return nil
}

func (m *memComments) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// nopLimiter never blocks.
type nopLimiter struct{}

func (nopLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	return true, 0, nil
}
func (nopLimiter) Success(context.Context, string, []byte) error { return nil }
func (nopLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}

// newTestRouter builds a full stack over in-memory repositories.
func newTestRouter(t *testing.T, accessTTL time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := token.NewCodec([]byte("access-secret"), []byte("refresh-secret"), accessTTL, time.Hour)
	users := newMemUsers()
	tasks := newMemTasks()
	comments := newMemComments()

	authSvc := service.NewAuthService(users, codec, nopLimiter{})
	srv := New(
		authSvc,
		service.NewUserService(users),
		service.NewTaskService(tasks),
		service.NewCommentService(comments, tasks),
		zaptest.NewLogger(t),
	)
	return srv.Router()
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorder body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account and returns its token pair.
func registerAndLogin(t *testing.T, r *gin.Engine, email, password, role string) (access, refresh string) {
	t.Helper()
	body := map[string]string{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	access, _ = resp["access_token"].(string)
	refresh, _ = resp["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}
