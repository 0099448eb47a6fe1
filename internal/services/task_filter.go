package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskFilter narrows task listing. Nil fields impose no constraint; the
// rest are combined with AND.
type TaskFilter struct {
	TaskStatusID *uint `form:"taskStatus"`
	ExecutorID   *uint `form:"executorId"`
	AuthorID     *uint `form:"authorId"`
	LabelID      *uint `form:"labelsId"`
}

func (f TaskFilter) Clauses() []clause.Expression {
	var exprs []clause.Expression

	if f.TaskStatusID != nil {
		exprs = append(exprs, clause.Eq{Column: taskColumn("task_status_id"), Value: *f.TaskStatusID})
	}

	if f.ExecutorID != nil {
		exprs = append(exprs, clause.Eq{Column: taskColumn("executor_id"), Value: *f.ExecutorID})
	}

	if f.AuthorID != nil {
		exprs = append(exprs, clause.Eq{Column: taskColumn("author_id"), Value: *f.AuthorID})
	}

	if f.LabelID != nil {
		exprs = append(exprs, clause.Expr{
			SQL:  "EXISTS (SELECT 1 FROM task_labels WHERE task_labels.task_id = tasks.id AND task_labels.label_id = ?)",
			Vars: []interface{}{*f.LabelID},
		})
	}

	return exprs
}

func (f TaskFilter) Apply(query *gorm.DB) *gorm.DB {
	exprs := f.Clauses()
	if len(exprs) == 0 {
		return query
	}
	return query.Clauses(clause.Where{Exprs: exprs})
}

func taskColumn(name string) clause.Column {
	return clause.Column{Table: "tasks", Name: name}
}
