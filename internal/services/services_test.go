package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/monocle-dev/taskmanager/db"
	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.ConnectDatabase("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}
	if err := db.MigrateDatabase(conn); err != nil {
		t.Fatalf("MigrateDatabase: %v", err)
	}

	return conn
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []TaskEvent
}

func (b *recordingBroadcaster) Broadcast(message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, message.(TaskEvent))
}

type fixture struct {
	db       *gorm.DB
	users    *UserService
	statuses *TaskStatusService
	labels   *LabelService
	tasks    *TaskService
	events   *recordingBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := newTestDB(t)
	events := &recordingBroadcaster{}

	return &fixture{
		db:       conn,
		users:    NewUserService(conn),
		statuses: NewTaskStatusService(conn),
		labels:   NewLabelService(conn),
		tasks:    NewTaskService(conn, events),
		events:   events,
	}
}

func (f *fixture) user(t *testing.T, email string) models.User {
	t.Helper()

	user, err := f.users.Create(context.Background(), types.UserRequest{
		Email:     email,
		FirstName: "Geralt",
		LastName:  "of Rivia",
		Password:  "yennefer",
	})
	if err != nil {
		t.Fatalf("Create user %s: %v", email, err)
	}
	return *user
}

func (f *fixture) status(t *testing.T, name string) models.TaskStatus {
	t.Helper()

	status, err := f.statuses.Create(context.Background(), types.TaskStatusRequest{Name: name})
	if err != nil {
		t.Fatalf("Create status %s: %v", name, err)
	}
	return *status
}

func (f *fixture) label(t *testing.T, name string) models.Label {
	t.Helper()

	label, err := f.labels.Create(context.Background(), types.LabelRequest{Name: name})
	if err != nil {
		t.Fatalf("Create label %s: %v", name, err)
	}
	return *label
}

func (f *fixture) task(t *testing.T, author models.User, req types.TaskRequest) models.Task {
	t.Helper()

	task, err := f.tasks.Create(context.Background(), author, req)
	if err != nil {
		t.Fatalf("Create task %s: %v", req.Name, err)
	}
	return *task
}

func count(t *testing.T, conn *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := conn.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	return n
}

func uintPtr(v uint) *uint {
	return &v
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Fatalf("expected field %q in %v", field, verr.Fields)
	}
}
