package types

import "strings"

type UserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,max=72"`
}

func (r *UserRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if strings.TrimSpace(r.Password) == "" {
		r.Password = ""
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskStatusRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *TaskStatusRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type LabelRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *LabelRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type TaskRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description"`
	TaskStatusID *uint  `json:"taskStatusId" validate:"required"`
	ExecutorID   *uint  `json:"executorId"`
	LabelIDs     []uint `json:"labelIds"`
}

func (r *TaskRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
