package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reparaya/handlers"
	"reparaya/middleware"
	"reparaya/utils"
)

// RegisterContractorRoutes registers contractor account endpoints.
func RegisterContractorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contractors")
	{
		api.POST("/register", hb.RegisterContractorHandler)
		api.POST("/login", hb.AuthenticateContractorHandler)

		// Public read endpoints used by the marketplace client.
		api.GET("/:id", hb.GetContractorHandler)
		api.GET("/:id/slots", hb.GetSlotsHandler)
		api.GET("/:id/schedule", hb.GetScheduleHandler)

		// Profile mutations require authentication.
		api.PATCH("/profile", middleware.JWTAuthContractorMiddleware(hb.ContractorRepo), hb.UpdateProfileHandler)
	}
}

// RegisterScheduleRoutes registers schedule management endpoints. Every
// route mutates the caller's own schedule, so the whole group is protected.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthContractorMiddleware(hb.ContractorRepo))

		api.POST("/rules", hb.CreateWeeklyRuleHandler)
		api.PUT("/rules/:ruleID", hb.UpdateWeeklyRuleHandler)
		api.DELETE("/rules/:ruleID", hb.DeleteWeeklyRuleHandler)

		api.POST("/exceptions", hb.CreateExceptionHandler)
		api.DELETE("/exceptions/:exceptionID", hb.DeleteExceptionHandler)

		api.POST("/blockouts", hb.CreateBlockoutHandler)
		api.DELETE("/blockouts/:blockoutID", hb.DeleteBlockoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm ReparaYa"})
	})
}

// SetupRoutes configures CORS and registers all route groups.
func SetupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterContractorRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterHealthRoute(r)
}
