package models

type TaskStatus struct {
	BaseModel

	Name string `gorm:"uniqueIndex;not null"`
}
