package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arjun/srms/internal/app/controllers"
	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	resultController *controllers.ResultController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/admin/login", authController.AdminLogin)
		auth.POST("/student/login", authController.StudentLogin)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Admin-only result management
		adminProtected := authenticated.Group("")
		adminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			years := adminProtected.Group("/years/:year")
			{
				years.GET("/sample", resultController.SampleCSV)

				results := years.Group("/results")
				{
					results.POST("", resultController.Upload)
					results.GET("", resultController.List)
					results.DELETE("", resultController.Clear)
					results.GET("/:id", resultController.Get)
					results.PUT("/:id", resultController.Update)
					results.DELETE("/:id", resultController.Delete)
				}
			}
		}

		// Student-only dashboard
		studentProtected := authenticated.Group("/students")
		studentProtected.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			studentProtected.GET("/me/result", studentController.MyResult)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
