package services

import (
	"errors"

	"gorm.io/gorm"
)

func findByID[T any](tx *gorm.DB, id uint, entity string) (*T, error) {
	var record T

	if err := tx.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(entity)
		}
		return nil, err
	}

	return &record, nil
}

// ensureUnique fails when another row of model already holds value in column.
// excludeID skips the row being updated; pass 0 on create.
func ensureUnique(tx *gorm.DB, model interface{}, column, field, value string, excludeID uint) error {
	var count int64

	query := tx.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return fieldError(field, "already exists")
	}

	return nil
}
