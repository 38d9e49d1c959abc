package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shoplist/internal/core"
)

// RouterConfig collects router dependencies. Nil Gatherer disables /metrics.
type RouterConfig struct {
	Handler  *Handler
	Gatherer prometheus.Gatherer
	Logger   core.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	h := cfg.Handler
	r.GET("/healthz", h.Health)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/shopping-list", h.ListEntries)
		api.DELETE("/shopping-list", h.Clear)
		api.POST("/shopping-list/recipes", h.MergeRecipe)
		api.DELETE("/shopping-list/recipes/:recipe", h.WithdrawRecipe)
		api.PUT("/shopping-list/entries/:name", h.SetAmount)
		api.DELETE("/shopping-list/entries/:name", h.RemoveEntry)
		api.GET("/recipes", h.ListRecipes)
	}
	return r
}

func requestLogger(logger core.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
