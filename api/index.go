package handler

import (
	"net/http"

	"github.com/arnavshah/workload-api-go/pkg/auth"
	"github.com/arnavshah/workload-api-go/pkg/database"
	"github.com/arnavshah/workload-api-go/pkg/handlers"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	// Initialize DB
	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := handlers.NewHandler(db)

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Workload API (Go Version on Vercel)",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)

		admin.GET("/holidays", h.ListHolidays)
		admin.POST("/holidays", h.CreateHoliday)
		admin.PUT("/holidays/:id", h.UpdateHoliday)
		admin.DELETE("/holidays/:id", h.DeleteHoliday)

		admin.GET("/vacations", h.ListVacations)
		admin.POST("/vacations", h.CreateVacation)
		admin.DELETE("/vacations/:id", h.DeleteVacation)

		admin.GET("/thresholds", h.ListThresholds)
		admin.POST("/thresholds", h.UpsertThreshold)
		admin.DELETE("/thresholds/:user_id", h.DeleteThreshold)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/workload", h.ComputeWorkload)
		api.POST("/workload/csv", h.ExportWorkloadCSV)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
