package models

type Task struct {
	BaseModel

	Name         string `gorm:"uniqueIndex;not null"`
	Description  string
	TaskStatusID uint  `gorm:"not null;index"`
	AuthorID     uint  `gorm:"not null;index"`
	ExecutorID   *uint `gorm:"index"`

	// Relationships
	TaskStatus TaskStatus `gorm:"foreignKey:TaskStatusID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Author     User       `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Executor   *User      `gorm:"foreignKey:ExecutorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Labels     []Label    `gorm:"many2many:task_labels"`
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&TaskStatus{},
		&Label{},
		&Task{},
	}
}
