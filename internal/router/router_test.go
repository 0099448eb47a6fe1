package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/db"
	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/config"
	"github.com/monocle-dev/taskmanager/internal/realtime"
	"github.com/monocle-dev/taskmanager/internal/types"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.ConnectDatabase(config.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}
	if err := db.MigrateDatabase(conn); err != nil {
		t.Fatalf("MigrateDatabase: %v", err)
	}

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	cfg := &config.Config{
		BaseURL:        "/api",
		DBDriver:       config.DriverSQLite,
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	return NewRouter(cfg, conn, tokens, realtime.NewHub())
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body %s", w.Code, want, w.Body.String())
	}
}

func register(t *testing.T, r *gin.Engine, email string) types.UserResponse {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/users", "", map[string]string{
		"firstName": "Geralt",
		"lastName":  "of Rivia",
		"email":     email,
		"password":  "roach123",
	})
	expectStatus(t, w, http.StatusCreated)

	var user types.UserResponse
	decode(t, w, &user)
	return user
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "roach123"})
	expectStatus(t, w, http.StatusOK)

	var token types.TokenResponse
	decode(t, w, &token)
	if token.Token == "" {
		t.Fatalf("expected token in %s", w.Body.String())
	}
	return token.Token
}

func TestPublicEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/welcome", "", nil)
	expectStatus(t, w, http.StatusOK)

	w = do(t, r, http.MethodGet, "/api/health", "", nil)
	expectStatus(t, w, http.StatusOK)

	w = do(t, r, http.MethodGet, "/api/users", "", nil)
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}
}

func TestRegistrationAndLogin(t *testing.T) {
	r := newTestRouter(t)

	user := register(t, r, "Geralt@Rivia.com ")
	if user.ID == 0 || user.Email != "geralt@rivia.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	w := do(t, r, http.MethodPost, "/api/users", "", map[string]string{
		"firstName": "Other",
		"lastName":  "Geralt",
		"email":     "geralt@rivia.com",
		"password":  "roach123",
	})
	expectStatus(t, w, http.StatusUnprocessableEntity)

	w = do(t, r, http.MethodPost, "/api/users", "", map[string]string{"email": "not-an-email"})
	expectStatus(t, w, http.StatusUnprocessableEntity)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &verr)
	for _, field := range []string{"email", "firstName", "lastName", "password"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected %s in %v", field, verr.Fields)
		}
	}

	w = do(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": "geralt@rivia.com", "password": "wrong"})
	expectStatus(t, w, http.StatusUnauthorized)

	w = do(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": "nobody@rivia.com", "password": "roach123"})
	expectStatus(t, w, http.StatusUnauthorized)

	token := login(t, r, "geralt@rivia.com")

	w = do(t, r, http.MethodGet, "/api/users/me", token, nil)
	expectStatus(t, w, http.StatusOK)
	var me types.UserResponse
	decode(t, w, &me)
	if me.ID != user.ID {
		t.Fatalf("expected me to be %d, got %d", user.ID, me.ID)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/1"},
		{http.MethodPut, "/api/tasks/1"},
		{http.MethodDelete, "/api/tasks/1"},
		{http.MethodGet, "/api/task_statuses"},
		{http.MethodPost, "/api/task_statuses"},
		{http.MethodGet, "/api/task_statuses/1"},
		{http.MethodPut, "/api/task_statuses/1"},
		{http.MethodDelete, "/api/task_statuses/1"},
		{http.MethodGet, "/api/labels"},
		{http.MethodPost, "/api/labels"},
		{http.MethodGet, "/api/labels/1"},
		{http.MethodPut, "/api/labels/1"},
		{http.MethodDelete, "/api/labels/1"},
		{http.MethodGet, "/api/users/1"},
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/ws/tasks"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			expectStatus(t, do(t, r, p.method, p.path, "", nil), http.StatusForbidden)
			expectStatus(t, do(t, r, p.method, p.path, "garbage", nil), http.StatusForbidden)
		})
	}
}

func TestTokenCookie(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "geralt@rivia.com")

	w := do(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": "geralt@rivia.com", "password": "roach123"})
	expectStatus(t, w, http.StatusOK)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == types.TokenCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only token cookie, got %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/task_statuses", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	w = do(t, r, http.MethodPost, "/api/logout", "", nil)
	expectStatus(t, w, http.StatusOK)
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == types.TokenCookie && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected logout to clear the token cookie")
	}
}

func TestUserOwnership(t *testing.T) {
	r := newTestRouter(t)
	geralt := register(t, r, "geralt@rivia.com")
	yen := register(t, r, "yen@vengerberg.com")
	token := login(t, r, "geralt@rivia.com")

	update := map[string]string{
		"firstName": "White",
		"lastName":  "Wolf",
		"email":     "wolf@rivia.com",
		"password":  "roach123",
	}

	expectStatus(t, do(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", yen.ID), token, update), http.StatusForbidden)
	expectStatus(t, do(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", yen.ID), token, nil), http.StatusForbidden)
	expectStatus(t, do(t, r, http.MethodPut, "/api/users/999", token, update), http.StatusNotFound)
	expectStatus(t, do(t, r, http.MethodGet, "/api/users/abc", token, nil), http.StatusBadRequest)

	w := do(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", geralt.ID), token, update)
	expectStatus(t, w, http.StatusOK)
	var updated types.UserResponse
	decode(t, w, &updated)
	if updated.Email != "wolf@rivia.com" || updated.FirstName != "White" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	// the session outlives the email change
	w = do(t, r, http.MethodGet, "/api/users/me", token, nil)
	expectStatus(t, w, http.StatusOK)
	var me types.UserResponse
	decode(t, w, &me)
	if me.ID != geralt.ID || me.Email != "wolf@rivia.com" {
		t.Fatalf("unexpected principal after update: %+v", me)
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", geralt.ID), token, nil)
	expectStatus(t, w, http.StatusOK)
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", w.Body.String())
	}

	// the token now names a user that no longer exists
	expectStatus(t, do(t, r, http.MethodGet, "/api/users/me", token, nil), http.StatusForbidden)
}

func TestTaskLifecycle(t *testing.T) {
	r := newTestRouter(t)
	geralt := register(t, r, "geralt@rivia.com")
	yen := register(t, r, "yen@vengerberg.com")
	token := login(t, r, "geralt@rivia.com")
	otherToken := login(t, r, "yen@vengerberg.com")

	var status types.TaskStatusResponse
	w := do(t, r, http.MethodPost, "/api/task_statuses", token, map[string]string{"name": "new"})
	expectStatus(t, w, http.StatusCreated)
	decode(t, w, &status)

	expectStatus(t, do(t, r, http.MethodPost, "/api/task_statuses", token, map[string]string{"name": "new"}), http.StatusUnprocessableEntity)

	var bug types.LabelResponse
	w = do(t, r, http.MethodPost, "/api/labels", token, map[string]string{"name": "bug"})
	expectStatus(t, w, http.StatusCreated)
	decode(t, w, &bug)

	w = do(t, r, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"name":         "contract",
		"description":  "griffin",
		"taskStatusId": status.ID,
		"executorId":   yen.ID,
		"labelIds":     []uint{bug.ID},
	})
	expectStatus(t, w, http.StatusCreated)
	var task types.TaskResponse
	decode(t, w, &task)
	if task.Author.ID != geralt.ID || task.Executor == nil || task.Executor.ID != yen.ID || len(task.Labels) != 1 {
		t.Fatalf("unexpected task: %+v", task)
	}

	expectStatus(t, do(t, r, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"name":         "ghost",
		"taskStatusId": status.ID,
		"labelIds":     []uint{999},
	}), http.StatusNotFound)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/tasks?taskStatus=%d&executorId=%d&authorId=%d&labelsId=%d", status.ID, yen.ID, geralt.ID, bug.ID), token, nil)
	expectStatus(t, w, http.StatusOK)
	var filtered []types.TaskResponse
	decode(t, w, &filtered)
	if len(filtered) != 1 || filtered[0].ID != task.ID {
		t.Fatalf("expected the task, got %+v", filtered)
	}

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/tasks?authorId=%d", yen.ID), token, nil)
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}

	expectStatus(t, do(t, r, http.MethodGet, "/api/tasks?taskStatus=abc", token, nil), http.StatusBadRequest)

	// referenced rows are protected
	expectStatus(t, do(t, r, http.MethodDelete, fmt.Sprintf("/api/task_statuses/%d", status.ID), token, nil), http.StatusUnprocessableEntity)
	expectStatus(t, do(t, r, http.MethodDelete, fmt.Sprintf("/api/labels/%d", bug.ID), token, nil), http.StatusUnprocessableEntity)
	expectStatus(t, do(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", yen.ID), otherToken, nil), http.StatusUnprocessableEntity)

	taskPath := fmt.Sprintf("/api/tasks/%d", task.ID)
	expectStatus(t, do(t, r, http.MethodDelete, taskPath, otherToken, nil), http.StatusForbidden)
	expectStatus(t, do(t, r, http.MethodPut, taskPath, otherToken, map[string]interface{}{"name": "mine", "taskStatusId": status.ID}), http.StatusForbidden)

	w = do(t, r, http.MethodPut, taskPath, token, map[string]interface{}{"name": "contract", "taskStatusId": status.ID})
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &task)
	if task.Executor != nil || len(task.Labels) != 0 {
		t.Fatalf("expected executor and labels cleared, got %+v", task)
	}

	expectStatus(t, do(t, r, http.MethodDelete, taskPath, token, nil), http.StatusOK)
	expectStatus(t, do(t, r, http.MethodGet, taskPath, token, nil), http.StatusNotFound)

	expectStatus(t, do(t, r, http.MethodDelete, fmt.Sprintf("/api/labels/%d", bug.ID), token, nil), http.StatusOK)
	expectStatus(t, do(t, r, http.MethodDelete, fmt.Sprintf("/api/task_statuses/%d", status.ID), token, nil), http.StatusOK)
}
