package api

import (
	"net/http"

	"gymbook/admin-app/internal/service"
	"gymbook/admin-app/internal/watch"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	provisioningService service.ProvisioningService,
	gymService service.GymService,
	trainerService service.TrainerService,
	gymHub *watch.Hub,
	trainerHub *watch.Hub,
) {
	authHandler := NewAuthHandler(authService)
	provisioningHandler := NewProvisioningHandler(provisioningService)
	gymHandler := NewGymHandler(gymService)
	trainerHandler := NewTrainerHandler(trainerService)
	streamHandler := NewStreamHandler(gymService, trainerService, gymHub, trainerHub)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// Admin routes. The middleware only authenticates; each service
		// operation re-reads the caller's persisted role before acting.
		adminGroup := protected.Group("/admin")
		{
			// Trainer account provisioning (the two callable operations).
			// The delete path param is the identity uid, not the trainer
			// document id.
			adminGroup.POST("/trainers", provisioningHandler.CreateTrainer)
			adminGroup.DELETE("/trainers/:id", provisioningHandler.DeleteTrainer)

			// Gym catalog
			adminGroup.GET("/gyms", gymHandler.ListGyms)
			adminGroup.POST("/gyms", gymHandler.CreateGym)
			adminGroup.PUT("/gyms/:id", gymHandler.UpdateGym)
			adminGroup.DELETE("/gyms/:id", gymHandler.DeleteGym)

			// Trainer management (by trainer document id)
			adminGroup.GET("/trainers", trainerHandler.ListTrainers)
			adminGroup.PUT("/trainers/:id", trainerHandler.UpdateTrainer)
			adminGroup.POST("/trainers/:id/sync", trainerHandler.SyncFromUser)
			adminGroup.POST("/trainers/:id/photo-upload-url", trainerHandler.IssuePhotoUploadURL)
			adminGroup.DELETE("/trainers/:id/photo", trainerHandler.RemovePhoto)

			// Live list streams (SSE)
			adminGroup.GET("/stream/gyms", streamHandler.StreamGyms)
			adminGroup.GET("/stream/trainers", streamHandler.StreamTrainers)
		}
	}
}
