package router

import (
	"github.com/gin-gonic/gin"

	"pantryos/internal/handler"
	"pantryos/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	parseH *handler.ParseHandler,
	receiptH *handler.ReceiptHandler,
	reviewH *handler.ReviewHandler,
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
	v1.Use(middleware.HouseholdGuard())

	// Receipt routes
	receipts := v1.Group("/receipts")
	receipts.POST("/parse", parseH.Parse)
	receipts.POST("/parse-async", parseH.ParseAsync)
	receipts.GET("", receiptH.List)
	receipts.GET("/export", receiptH.Export)
	receipts.GET("/:id", receiptH.GetByID)

	// Review queue routes
	review := v1.Group("/review")
	review.GET("", reviewH.ListPending)
	review.POST("/:id/resolve", reviewH.Resolve)

	return r
}
