package api

import (
	"net/http"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth       service.AuthService
	Profile    service.ProfileService
	Plan       service.PlanService
	Adaptation service.AdaptationService
	Exercise   service.ExerciseService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profile)
	planHandler := NewPlanHandler(svc.Plan)
	adaptationHandler := NewAdaptationHandler(svc.Adaptation)
	exerciseHandler := NewExerciseHandler(svc.Exercise)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
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

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.SaveProfile)
			profileGroup.POST("/injuries", profileHandler.AddInjury)
			profileGroup.PATCH("/injuries/:index", profileHandler.UpdateInjuryStatus)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.GeneratePlan)
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.POST("/active/export", planHandler.ExportPlan)
			planGroup.PATCH("/active/workouts/:workoutId", planHandler.UpdateWorkoutStatus)

			adaptGroup := planGroup.Group("/active/adaptations")
			{
				adaptGroup.GET("", adaptationHandler.ListAdaptations)
				adaptGroup.POST("/missed", adaptationHandler.MissedWorkouts)
				adaptGroup.POST("/intensity", adaptationHandler.Intensity)
				adaptGroup.POST("/feedback", adaptationHandler.Feedback)
				adaptGroup.POST("/schedule", adaptationHandler.Schedule)
				adaptGroup.POST("/injury", adaptationHandler.Injury)
				adaptGroup.POST("/timeline", adaptationHandler.Timeline)
			}
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/safe", exerciseHandler.ListSafeExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("", RoleMiddleware(domain.RoleCoach), exerciseHandler.CreateExercise)
		}
	}
}
