package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/internal/handlers"
	"github.com/sigma-matching/sigma/internal/middleware"
	"github.com/sigma-matching/sigma/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/google", handlers.GoogleLogin)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		leads := api.Group("/leads", middleware.AuthMiddleware())
		{
			leads.GET("", handlers.ListLeads)
			leads.POST("", handlers.CreateLead)
			leads.GET("/:lead_id", handlers.GetLead)
			leads.PUT("/:lead_id", handlers.UpdateLead)
			leads.GET("/:lead_id/biens", handlers.ListBiensForLead)
		}

		biens := api.Group("/biens", middleware.AuthMiddleware())
		{
			biens.PUT("/:bien_id/statut", handlers.UpdateBienStatut)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminRequired())
		{
			admin.GET("/stats", handlers.AdminStats)
			admin.GET("/users", handlers.ListUsers)
		}
	}

	return r
}
