// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"tripplan/internal/http/handlers"
	"tripplan/internal/http/middleware"
	"tripplan/internal/infra"
	"tripplan/internal/modules/plan"
)

type RouterDeps struct {
	Planner  handlers.Planner
	Language plan.Language
	Logger   zerolog.Logger
	// Registry serves /metrics when set.
	Registry *prometheus.Registry
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Logger), middleware.Recovery(deps.Logger), middleware.Metrics())

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Language)
	r.POST("/api/plans", planHandler.Create)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(infra.MetricsHandler(deps.Registry)))
	}
	return r
}
