package router

import (
	"github.com/cuongbtq/taskqueue-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	healthHandler := handler.NewHealthHandler(deps)
	taskHandler := handler.NewTaskHandler(deps)
	registryHandler := handler.NewRegistryHandler(deps)

	r.GET("/health", healthHandler.Health)

	// Jobs
	r.POST("/tasks", taskHandler.CreateTask)
	r.GET("/results", taskHandler.ListResults)
	r.GET("/results/:task_id", taskHandler.GetResult)
	r.GET("/queue", taskHandler.PeekQueue)

	// Users and assets
	r.POST("/add_user", registryHandler.AddUser)
	r.GET("/get_users", registryHandler.GetUsers)
	r.POST("/add_asset", registryHandler.AddAsset)
	r.GET("/get_asset", registryHandler.GetAssets)

	return r
}
