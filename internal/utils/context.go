package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return models.User{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(models.User)

	if !ok {
		return models.User{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}
