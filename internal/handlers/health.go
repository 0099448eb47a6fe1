package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, code := "ok", http.StatusOK

	if err := h.ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"message":   "Task manager is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Task Manager")
}

func (h *HealthHandler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
