package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/services"
	"github.com/monocle-dev/taskmanager/internal/types"
	"github.com/monocle-dev/taskmanager/internal/utils"
)

type UserHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

func NewUserHandler(users *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: authService}
}

func (h *UserHandler) CreateUser(ctx *gin.Context) {
	var req types.UserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	user, err := h.auth.Register(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(*user))
}

func (h *UserHandler) ListUsers(ctx *gin.Context) {
	users, err := h.users.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *UserHandler) GetUser(ctx *gin.Context) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *UserHandler) UpdateUser(ctx *gin.Context) {
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

	var req types.UserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	user, err := h.users.Update(ctx.Request.Context(), currentUser, id, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *UserHandler) DeleteUser(ctx *gin.Context) {
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

	if err := h.users.Delete(ctx.Request.Context(), currentUser, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
