package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/services"
	"github.com/monocle-dev/taskmanager/internal/types"
	"github.com/monocle-dev/taskmanager/internal/utils"
)

type LabelHandler struct {
	labels *services.LabelService
}

func NewLabelHandler(labels *services.LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

func (h *LabelHandler) CreateLabel(ctx *gin.Context) {
	var req types.LabelRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	label, err := h.labels.Create(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewLabelResponse(*label))
}

func (h *LabelHandler) ListLabels(ctx *gin.Context) {
	labels, err := h.labels.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.LabelResponse, 0, len(labels))

	for _, label := range labels {
		response = append(response, types.NewLabelResponse(label))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *LabelHandler) GetLabel(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	label, err := h.labels.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewLabelResponse(*label))
}

func (h *LabelHandler) UpdateLabel(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.LabelRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	label, err := h.labels.Update(ctx.Request.Context(), id, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewLabelResponse(*label))
}

func (h *LabelHandler) DeleteLabel(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.labels.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
