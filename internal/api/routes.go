package api

import (
	"net/http"

	"alcyxob/runplan/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	routeService service.RouteService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	runHandler := NewRunHandler(planService)
	routeHandler := NewRouteHandler(routeService)

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
		protected.GET("/me", authHandler.Me)
		protected.POST("/onboarding", planHandler.Onboarding)
		protected.GET("/today", planHandler.GetToday)
		protected.GET("/adjustments", planHandler.ListAdjustments)

		planGroup := protected.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.GET("/progress", planHandler.GetProgress)
			// Any day of the week is accepted; the view snaps to its Monday.
			planGroup.GET("/weeks/:weekStart", planHandler.GetWeek)
		}

		// Previews never write; move/skip/complete do.
		runGroup := protected.Group("/runs/:id")
		{
			runGroup.POST("/preview-move", runHandler.PreviewMove)
			runGroup.POST("/preview-skip", runHandler.PreviewSkip)
			runGroup.GET("/drop-dates", runHandler.DropDates)
			runGroup.POST("/move", runHandler.Move)
			runGroup.POST("/skip", runHandler.Skip)
			runGroup.POST("/complete", runHandler.Complete)
		}

		routeGroup := protected.Group("/routes")
		{
			routeGroup.POST("", routeHandler.CreateRoute)
			routeGroup.GET("", routeHandler.ListRoutes)
			routeGroup.POST("/:id/export", routeHandler.ExportRoute)
		}
	}
}
