package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/siteproof/api/internal/limiter"
	"github.com/siteproof/api/internal/middleware"
)

// RouterConfig carries the handlers and shared dependencies of the API.
type RouterConfig struct {
	JWTSecret  string
	Analysis   *AnalysisHandler
	Dictionary *DictionaryHandler
	Limiter    *limiter.Limiter
	Logger     hclog.Logger
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limits := NewLimitsHandler(cfg.Limiter)
	writeLimit := middleware.RateLimit(cfg.Limiter, limiter.ActionDictionaryWrite, cfg.Logger)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/limits", limits.GetLimits)

		// Analysis
		analyze := middleware.RateLimit(cfg.Limiter, limiter.ActionAnalyze, cfg.Logger)
		api.POST("/analyze", analyze, cfg.Analysis.Analyze)
		api.POST("/analyze/url", analyze, cfg.Analysis.AnalyzeURL)
		api.GET("/analyses/:id", cfg.Analysis.GetRun)

		// Dictionary
		api.GET("/dictionary/words", cfg.Dictionary.ListWords)
		api.POST("/dictionary/words", writeLimit, cfg.Dictionary.AddWord)
		api.DELETE("/dictionary/words/:id", writeLimit, cfg.Dictionary.RemoveWord)
		api.POST("/dictionary/import", writeLimit, cfg.Dictionary.ImportWords)
		api.POST("/dictionary/suggestions", writeLimit, cfg.Dictionary.PromoteSuggestion)
		api.POST("/projects/:id/industry-dictionaries", writeLimit, cfg.Dictionary.EnableIndustry)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminMiddleware(cfg.JWTSecret))
	{
		admin.PUT("/industry-dictionaries/:slug", cfg.Dictionary.UpsertIndustry)
	}

	return r
}
