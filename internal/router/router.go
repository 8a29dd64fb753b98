package router

import (
	"github.com/gin-gonic/gin"

	"github.com/srinathstart/HealthSyncAI/internal/handler"
	"github.com/srinathstart/HealthSyncAI/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	reports := v1.Group("/reports")
	reports.POST("/analyze", analysisH.Analyze)
	reports.GET("", analysisH.List)
	reports.GET("/graph", analysisH.Graph)
	reports.GET("/export", analysisH.Export)
	reports.GET("/:id", analysisH.GetByID)
	reports.GET("/:id/raw", analysisH.DownloadRaw)
	reports.GET("/:id/analysis", analysisH.DownloadAnalysis)

	return r
}
