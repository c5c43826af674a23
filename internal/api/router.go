package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter собирает gin-движок: /health и /metrics плюс API v1.
func NewRouter(h *Handler, log *slog.Logger, exposeMetrics bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLog(log))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	if exposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/stock", h.ListStock)
		v1.GET("/stock/:id/status", h.StockStatus)
		v1.POST("/stock/:id/receipts", h.PostReceipt)
		v1.GET("/stock/export", h.ExportStock)

		v1.GET("/readings", h.ListReadings)
		v1.POST("/readings", h.PostReading)
		v1.POST("/readings/:id/supersede", h.PostSupersede)

		v1.POST("/reconciliations", h.PostReconciliation)
		v1.GET("/reconciliations", h.ListReconciliations)
		v1.GET("/reconciliations/export", h.ExportReconciliations)
		v1.POST("/cash-closings", h.PostCashClosing)

		v1.GET("/alerts/:id", h.AlertState)

		v1.GET("/fuel-types", h.ListFuelTypes)
		v1.POST("/fuel-types", h.PostFuelType)
		v1.GET("/tanks", h.ListTanks)
		v1.POST("/tanks", h.PostTank)
		v1.PATCH("/tanks/:id/status", h.PatchTankStatus)
		v1.DELETE("/tanks/:id", h.RetireTank)
		v1.GET("/pumps", h.ListPumps)
		v1.POST("/pumps", h.PostPump)
		v1.PATCH("/pumps/:id/status", h.PatchPumpStatus)
		v1.POST("/distributions", h.PostDistribution)
	}

	return r
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
