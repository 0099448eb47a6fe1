package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/services"
)

// respondError translates service errors into status codes.
func respondError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": validationErr.Fields})
	case errors.Is(err, services.ErrInUse):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("Unhandled error on %s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondBadRequest(ctx *gin.Context, err error) {
	log.Printf("Failed to bind request: %v", err)
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
