package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetID parses the :id path parameter.
func GetID(ctx *gin.Context) (uint, error) {
	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("Invalid ID")
	}

	return uint(id), nil
}
