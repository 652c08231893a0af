package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdwerf/userbase/internal/repository"
	"github.com/avdwerf/userbase/internal/services"
)

// fakeStore is an in-memory UserStore backing the handler tests.
type fakeStore struct {
	users map[string]*repository.User
}

func (s *fakeStore) Create(_ context.Context, user *repository.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*repository.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) List(_ context.Context, limit, offset int) ([]repository.User, error) {
	out := make([]repository.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeStore) Update(_ context.Context, user *repository.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// newTestRouter registers the user routes without the auth middleware;
// authentication has its own tests.
func newTestRouter() (*gin.Engine, *fakeStore) {
	gin.SetMode(gin.TestMode)

	store := &fakeStore{users: map[string]*repository.User{}}
	h := NewHandlers(services.NewUserService(store))

	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/api/v1/users", h.CreateUser)
	r.GET("/api/v1/users", h.ListUsers)
	r.GET("/api/v1/users/:id", h.GetUser)
	r.PUT("/api/v1/users/:id", h.UpdateUser)
	r.DELETE("/api/v1/users/:id", h.DeleteUser)
	return r, store
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetUserNotFound(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/users/abc-123", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t,
		`{"error":"NOT_FOUND","message":"User with id abc-123 not found"}`,
		w.Body.String())
}

func TestErrorBodyHasNoDetailsKey(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/users/abc-123", "")

	assert.NotContains(t, w.Body.String(), "details")
}

func TestCreateUser(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users",
		`{"email":"jane@example.test","name":"Jane Doe","password":"correct-horse"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "jane@example.test")
	assert.Contains(t, body, `"role":"member"`)
	assert.NotContains(t, body, "password")
}

func TestCreateUserMalformedBody(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users", `{"email": not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "SERIALIZATION_ERROR")
}

func TestCreateUserInvalidEmail(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users",
		`{"email":"not-an-email","name":"Jane","password":"correct-horse"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestCreateUserDuplicate(t *testing.T) {
	r, _ := newTestRouter()
	payload := `{"email":"jane@example.test","name":"Jane","password":"correct-horse"}`

	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/v1/users", payload).Code)
	w := doJSON(r, http.MethodPost, "/api/v1/users", payload)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestListUsers(t *testing.T) {
	r, _ := newTestRouter()
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/v1/users",
		`{"email":"jane@example.test","name":"Jane","password":"correct-horse"}`).Code)

	w := doJSON(r, http.MethodGet, "/api/v1/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.test")
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"limit":20`)
}

func TestListUsersPagination(t *testing.T) {
	r, _ := newTestRouter()
	for _, email := range []string{"a@example.test", "b@example.test", "c@example.test"} {
		require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/v1/users",
			`{"email":"`+email+`","name":"User","password":"correct-horse"}`).Code)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/users?limit=2&offset=1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
	assert.Contains(t, w.Body.String(), `"limit":2`)
	assert.Contains(t, w.Body.String(), `"offset":1`)
}

func TestUpdateUser(t *testing.T) {
	r, store := newTestRouter()
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/v1/users",
		`{"email":"jane@example.test","name":"Jane","password":"correct-horse"}`).Code)

	var id string
	for k := range store.users {
		id = k
	}

	w := doJSON(r, http.MethodPut, "/api/v1/users/"+id, `{"name":"Jane Q. Doe"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Q. Doe")
}

func TestUpdateUserNoFields(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPut, "/api/v1/users/any", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestDeleteUser(t *testing.T) {
	r, store := newTestRouter()
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/v1/users",
		`{"email":"jane@example.test","name":"Jane","password":"correct-horse"}`).Code)

	var id string
	for k := range store.users {
		id = k
	}

	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/api/v1/users/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, "/api/v1/users/"+id, "").Code)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
