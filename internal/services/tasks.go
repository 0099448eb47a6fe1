package services

import (
	"context"
	"log"
	"sort"

	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Broadcaster receives task change events after they are committed.
type Broadcaster interface {
	Broadcast(message interface{})
}

type TaskEvent struct {
	Type    string `json:"type"`
	TaskID  uint   `json:"taskId"`
	ActorID uint   `json:"actorId"`
}

type TaskService struct {
	db     *gorm.DB
	events Broadcaster
}

// NewTaskService wires the service; events may be nil.
func NewTaskService(db *gorm.DB, events Broadcaster) *TaskService {
	return &TaskService{db: db, events: events}
}

func withTaskAssociations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("TaskStatus").Preload("Author").Preload("Executor").Preload("Labels", func(db *gorm.DB) *gorm.DB {
		return db.Order("labels.id")
	})
}

// Create stores a task authored by principal.
func (s *TaskService) Create(ctx context.Context, principal models.User, req types.TaskRequest) (*models.Task, error) {
	req.Normalize()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var task *models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Task{}, "name", "name", req.Name, 0); err != nil {
			return err
		}

		refs, err := resolveTaskReferences(tx, req)
		if err != nil {
			return err
		}

		record := models.Task{
			Name:         req.Name,
			Description:  req.Description,
			TaskStatusID: refs.status.ID,
			AuthorID:     principal.ID,
			ExecutorID:   refs.executorID(),
		}

		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return translateWriteError(err, "name", "Task")
		}

		if err := replaceLabels(tx, &record, refs.labels); err != nil {
			return err
		}

		task, err = findByID[models.Task](withTaskAssociations(tx), record.ID, "Task")
		return err
	})

	if err != nil {
		return nil, err
	}

	s.publish(types.TaskCreated, task.ID, principal.ID)

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	return findByID[models.Task](withTaskAssociations(s.db.WithContext(ctx)), id, "Task")
}

func (s *TaskService) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := filter.Apply(withTaskAssociations(s.db.WithContext(ctx)))

	if err := query.Order("tasks.id").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update replaces the task's fields. Omitted executor and labels are cleared.
// The author never changes.
func (s *TaskService) Update(ctx context.Context, principal models.User, id uint, req types.TaskRequest) (*models.Task, error) {
	req.Normalize()

	var task *models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findByID[models.Task](tx, id, "Task")
		if err != nil {
			return err
		}

		if !auth.IsOwner(principal, record.AuthorID) {
			return ErrForbidden
		}

		if err := validateStruct(req); err != nil {
			return err
		}

		if err := ensureUnique(tx, &models.Task{}, "name", "name", req.Name, record.ID); err != nil {
			return err
		}

		refs, err := resolveTaskReferences(tx, req)
		if err != nil {
			return err
		}

		record.Name = req.Name
		record.Description = req.Description
		record.TaskStatusID = refs.status.ID
		record.ExecutorID = refs.executorID()

		if err := tx.Omit(clause.Associations).Save(record).Error; err != nil {
			return translateWriteError(err, "name", "Task")
		}

		if err := replaceLabels(tx, record, refs.labels); err != nil {
			return err
		}

		task, err = findByID[models.Task](withTaskAssociations(tx), record.ID, "Task")
		return err
	})

	if err != nil {
		return nil, err
	}

	s.publish(types.TaskUpdated, task.ID, principal.ID)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, principal models.User, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findByID[models.Task](tx, id, "Task")
		if err != nil {
			return err
		}

		if !auth.IsOwner(principal, task.AuthorID) {
			return ErrForbidden
		}

		if err := tx.Model(task).Association("Labels").Clear(); err != nil {
			return err
		}

		return tx.Delete(task).Error
	})

	if err != nil {
		return err
	}

	s.publish(types.TaskDeleted, id, principal.ID)

	return nil
}

func (s *TaskService) publish(eventType string, taskID, actorID uint) {
	if s.events == nil {
		return
	}

	s.events.Broadcast(TaskEvent{Type: eventType, TaskID: taskID, ActorID: actorID})
	log.Printf("Published %s for task %d", eventType, taskID)
}

type taskReferences struct {
	status   *models.TaskStatus
	executor *models.User
	labels   []models.Label
}

func (r taskReferences) executorID() *uint {
	if r.executor == nil {
		return nil
	}
	id := r.executor.ID
	return &id
}

// resolveTaskReferences loads the status, executor and labels named by req.
// Any id without a row fails with ErrNotFound.
func resolveTaskReferences(tx *gorm.DB, req types.TaskRequest) (taskReferences, error) {
	var refs taskReferences
	var err error

	refs.status, err = findByID[models.TaskStatus](tx, *req.TaskStatusID, "Task status")
	if err != nil {
		return refs, err
	}

	if req.ExecutorID != nil {
		refs.executor, err = findByID[models.User](tx, *req.ExecutorID, "Executor")
		if err != nil {
			return refs, err
		}
	}

	ids := uniqueIDs(req.LabelIDs)
	if len(ids) == 0 {
		return refs, nil
	}

	if err := tx.Where("id IN ?", ids).Order("id").Find(&refs.labels).Error; err != nil {
		return refs, err
	}

	if len(refs.labels) != len(ids) {
		return refs, notFound("Label")
	}

	return refs, nil
}

func replaceLabels(tx *gorm.DB, task *models.Task, labels []models.Label) error {
	association := tx.Model(task).Association("Labels")

	if len(labels) == 0 {
		return association.Clear()
	}

	return association.Replace(labels)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	return result
}
