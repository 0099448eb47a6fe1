package models

type Label struct {
	BaseModel

	Name string `gorm:"uniqueIndex;not null"`
}
