package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/config"
	"github.com/monocle-dev/taskmanager/internal/handlers"
	"github.com/monocle-dev/taskmanager/internal/middleware"
	"github.com/monocle-dev/taskmanager/internal/realtime"
	"github.com/monocle-dev/taskmanager/internal/services"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB, tokens *auth.TokenManager, hub *realtime.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, tokens)
	taskStatusService := services.NewTaskStatusService(db)
	labelService := services.NewLabelService(db)
	taskService := services.NewTaskService(db, hub)

	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieDomain)
	userHandler := handlers.NewUserHandler(userService, authService)
	taskStatusHandler := handlers.NewTaskStatusHandler(taskStatusService)
	labelHandler := handlers.NewLabelHandler(labelService)
	taskHandler := handlers.NewTaskHandler(taskService)
	wsHandler := handlers.NewWebSocketHandler(hub, cfg.AllowedOrigins)

	requireAuth := middleware.AuthMiddleware(authService)

	api := r.Group(cfg.BaseURL)
	{
		api.GET("/health", healthHandler.HealthCheck)
		api.GET("/welcome", healthHandler.Welcome)
		api.GET("/ws/tasks", requireAuth, wsHandler.TaskEvents)

		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/me", requireAuth, authHandler.Me)
			users.GET("/:id", requireAuth, userHandler.GetUser)
			users.PUT("/:id", requireAuth, userHandler.UpdateUser)
			users.DELETE("/:id", requireAuth, userHandler.DeleteUser)
		}

		taskStatuses := api.Group("/task_statuses", requireAuth)
		{
			taskStatuses.POST("", taskStatusHandler.CreateTaskStatus)
			taskStatuses.GET("", taskStatusHandler.ListTaskStatuses)
			taskStatuses.GET("/:id", taskStatusHandler.GetTaskStatus)
			taskStatuses.PUT("/:id", taskStatusHandler.UpdateTaskStatus)
			taskStatuses.DELETE("/:id", taskStatusHandler.DeleteTaskStatus)
		}

		labels := api.Group("/labels", requireAuth)
		{
			labels.POST("", labelHandler.CreateLabel)
			labels.GET("", labelHandler.ListLabels)
			labels.GET("/:id", labelHandler.GetLabel)
			labels.PUT("/:id", labelHandler.UpdateLabel)
			labels.DELETE("/:id", labelHandler.DeleteLabel)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	return r
}
