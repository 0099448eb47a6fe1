package services

import (
	"context"

	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
	"gorm.io/gorm"
)

type LabelService struct {
	db *gorm.DB
}

func NewLabelService(db *gorm.DB) *LabelService {
	return &LabelService{db: db}
}

func (s *LabelService) Create(ctx context.Context, req types.LabelRequest) (*models.Label, error) {
	req.Normalize()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	label := models.Label{Name: req.Name}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Label{}, "name", "name", label.Name, 0); err != nil {
			return err
		}

		if err := tx.Create(&label).Error; err != nil {
			return translateWriteError(err, "name", "Label")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &label, nil
}

func (s *LabelService) Get(ctx context.Context, id uint) (*models.Label, error) {
	return findByID[models.Label](s.db.WithContext(ctx), id, "Label")
}

func (s *LabelService) List(ctx context.Context) ([]models.Label, error) {
	labels := []models.Label{}

	if err := s.db.WithContext(ctx).Order("id").Find(&labels).Error; err != nil {
		return nil, err
	}

	return labels, nil
}

func (s *LabelService) Update(ctx context.Context, id uint, req types.LabelRequest) (*models.Label, error) {
	req.Normalize()

	var label *models.Label

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		label, err = findByID[models.Label](tx, id, "Label")
		if err != nil {
			return err
		}

		if err := validateStruct(req); err != nil {
			return err
		}

		if err := ensureUnique(tx, &models.Label{}, "name", "name", req.Name, label.ID); err != nil {
			return err
		}

		label.Name = req.Name

		if err := tx.Save(label).Error; err != nil {
			return translateWriteError(err, "name", "Label")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return label, nil
}

// Delete is refused while the label is attached to any task.
func (s *LabelService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		label, err := findByID[models.Label](tx, id, "Label")
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Table("task_labels").Where("label_id = ?", label.ID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return inUse("Label")
		}

		if err := tx.Delete(label).Error; err != nil {
			return translateWriteError(err, "name", "Label")
		}

		return nil
	})
}
