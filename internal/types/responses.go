package types

import (
	"time"

	"github.com/monocle-dev/taskmanager/internal/models"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

type TaskStatusResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type LabelResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type TaskResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	TaskStatus  TaskStatusResponse `json:"taskStatus"`
	Author      UserResponse       `json:"author"`
	Executor    *UserResponse      `json:"executor"`
	Labels      []LabelResponse    `json:"labels"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}

func NewTaskStatusResponse(status models.TaskStatus) TaskStatusResponse {
	return TaskStatusResponse{
		ID:        status.ID,
		Name:      status.Name,
		CreatedAt: status.CreatedAt,
	}
}

func NewLabelResponse(label models.Label) LabelResponse {
	return LabelResponse{
		ID:        label.ID,
		Name:      label.Name,
		CreatedAt: label.CreatedAt,
	}
}

func NewTaskResponse(task models.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		TaskStatus:  NewTaskStatusResponse(task.TaskStatus),
		Author:      NewUserResponse(task.Author),
		Labels:      make([]LabelResponse, 0, len(task.Labels)),
		CreatedAt:   task.CreatedAt,
	}

	if task.Executor != nil {
		executor := NewUserResponse(*task.Executor)
		response.Executor = &executor
	}

	for _, label := range task.Labels {
		response.Labels = append(response.Labels, NewLabelResponse(label))
	}

	return response
}
