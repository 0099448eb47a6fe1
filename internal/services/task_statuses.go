package services

import (
	"context"

	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
	"gorm.io/gorm"
)

type TaskStatusService struct {
	db *gorm.DB
}

func NewTaskStatusService(db *gorm.DB) *TaskStatusService {
	return &TaskStatusService{db: db}
}

func (s *TaskStatusService) Create(ctx context.Context, req types.TaskStatusRequest) (*models.TaskStatus, error) {
	req.Normalize()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	status := models.TaskStatus{Name: req.Name}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.TaskStatus{}, "name", "name", status.Name, 0); err != nil {
			return err
		}

		if err := tx.Create(&status).Error; err != nil {
			return translateWriteError(err, "name", "Task status")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &status, nil
}

func (s *TaskStatusService) Get(ctx context.Context, id uint) (*models.TaskStatus, error) {
	return findByID[models.TaskStatus](s.db.WithContext(ctx), id, "Task status")
}

func (s *TaskStatusService) List(ctx context.Context) ([]models.TaskStatus, error) {
	statuses := []models.TaskStatus{}

	if err := s.db.WithContext(ctx).Order("id").Find(&statuses).Error; err != nil {
		return nil, err
	}

	return statuses, nil
}

func (s *TaskStatusService) Update(ctx context.Context, id uint, req types.TaskStatusRequest) (*models.TaskStatus, error) {
	req.Normalize()

	var status *models.TaskStatus

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		status, err = findByID[models.TaskStatus](tx, id, "Task status")
		if err != nil {
			return err
		}

		if err := validateStruct(req); err != nil {
			return err
		}

		if err := ensureUnique(tx, &models.TaskStatus{}, "name", "name", req.Name, status.ID); err != nil {
			return err
		}

		status.Name = req.Name

		if err := tx.Save(status).Error; err != nil {
			return translateWriteError(err, "name", "Task status")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return status, nil
}

// Delete is refused while any task still uses the status.
func (s *TaskStatusService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := findByID[models.TaskStatus](tx, id, "Task status")
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Task{}).Where("task_status_id = ?", status.ID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return inUse("Task status")
		}

		if err := tx.Delete(status).Error; err != nil {
			return translateWriteError(err, "name", "Task status")
		}

		return nil
	})
}
