package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/services"
	"github.com/monocle-dev/taskmanager/internal/types"
	"github.com/monocle-dev/taskmanager/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) CreateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "User not authenticated"})
		return
	}

	var req types.TaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	task, err := h.tasks.Create(ctx.Request.Context(), currentUser, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(*task))
}

// ListTasks accepts taskStatus, executorId, authorId and labelsId query
// parameters; each one present narrows the result.
func (h *TaskHandler) ListTasks(ctx *gin.Context) {
	var filter services.TaskFilter

	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	tasks, err := h.tasks.List(ctx.Request.Context(), filter)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskResponses(tasks))
}

func (h *TaskHandler) GetTask(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *TaskHandler) UpdateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.TaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	task, err := h.tasks.Update(ctx.Request.Context(), currentUser, id, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(*task))
}

func (h *TaskHandler) DeleteTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Delete(ctx.Request.Context(), currentUser, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

func taskResponses(tasks []models.Task) []types.TaskResponse {
	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	return response
}
