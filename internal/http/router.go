// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"packntrack/internal/http/handlers"
	"packntrack/internal/http/middleware"
)

type RouterDeps struct {
	Planner     handlers.TripPlanner
	Logger      *zap.Logger
	ServiceName string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(otelgin.Middleware(deps.ServiceName))

	tripHandler := handlers.NewTripHandler(deps.Planner, logger)
	optionsHandler := handlers.NewOptionsHandler()

	api := r.Group("/api")
	api.Any("/plan-trip", tripHandler.PlanTrip)
	api.GET("/options", optionsHandler.List)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
