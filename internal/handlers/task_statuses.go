package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/services"
	"github.com/monocle-dev/taskmanager/internal/types"
	"github.com/monocle-dev/taskmanager/internal/utils"
)

type TaskStatusHandler struct {
	statuses *services.TaskStatusService
}

func NewTaskStatusHandler(statuses *services.TaskStatusService) *TaskStatusHandler {
	return &TaskStatusHandler{statuses: statuses}
}

func (h *TaskStatusHandler) CreateTaskStatus(ctx *gin.Context) {
	var req types.TaskStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	status, err := h.statuses.Create(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskStatusResponse(*status))
}

func (h *TaskStatusHandler) ListTaskStatuses(ctx *gin.Context) {
	statuses, err := h.statuses.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.TaskStatusResponse, 0, len(statuses))

	for _, status := range statuses {
		response = append(response, types.NewTaskStatusResponse(status))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TaskStatusHandler) GetTaskStatus(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.statuses.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskStatusResponse(*status))
}

func (h *TaskStatusHandler) UpdateTaskStatus(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.TaskStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	status, err := h.statuses.Update(ctx.Request.Context(), id, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskStatusResponse(*status))
}

func (h *TaskStatusHandler) DeleteTaskStatus(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.statuses.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
