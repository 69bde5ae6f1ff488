package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siteproof/api/internal/ai"
	"github.com/siteproof/api/internal/analysis"
	"github.com/siteproof/api/internal/cache"
	"github.com/siteproof/api/internal/config"
	"github.com/siteproof/api/internal/database"
	"github.com/siteproof/api/internal/dictionary"
	"github.com/siteproof/api/internal/extract"
	"github.com/siteproof/api/internal/handler"
	"github.com/siteproof/api/internal/httpclient"
	"github.com/siteproof/api/internal/limiter"
	"github.com/siteproof/api/internal/llm"
	"github.com/siteproof/api/internal/logger"
	"github.com/siteproof/api/internal/spelling"
)

func main() {
	cfg := config.Load()
	log := logger.New("siteproof", cfg.LogLevel)

	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Auto migrate
	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Redis backs the dictionary cache and rate limits; both fail open
	resolverOpts := []dictionary.ResolverOption{dictionary.WithLogger(log.Named("dictionary"))}
	var rateLimiter *limiter.Limiter
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Warn("failed to connect to redis, continuing without cache and rate limits", "error", err)
	} else {
		defer redisCache.Close()
		resolverOpts = append(resolverOpts, dictionary.WithCache(redisCache, cfg.DictionaryCacheTTL))
		rateLimiter = limiter.NewLimiter(limiter.NewRedisCounter(redisCache.Client()), nil)
	}

	resolver := dictionary.NewResolver(db, resolverOpts...)

	engine, err := spelling.NewEngine(cfg.SpellEngine, cfg.AspellPath, cfg.DictionaryDir, log.Named("spelling"))
	if err != nil {
		log.Error("failed to initialize spell engine", "error", err)
		os.Exit(1)
	}
	if !engine.Available() {
		log.Warn("spell engine unavailable, spelling checks will fail", "engine", engine.Name())
	}

	llmClient := llm.NewClient(cfg.LLMURL, cfg.LLMModel, httpclient.New(log.Named("llm"), httpclient.Options{
		Timeout:    cfg.LLMTimeout,
		RetryCount: cfg.LLMRetries,
	}))
	reviewer := ai.NewLLMReviewer(llmClient, log.Named("reviewer"))

	analyzer := analysis.New(engine,
		analysis.WithResolver(resolver),
		analysis.WithReviewer(reviewer),
		analysis.WithScoreWeights(cfg.ScoreWeights),
		analysis.WithDefaultLocale(cfg.DefaultLocale),
		analysis.WithLogger(log.Named("analysis")))

	// tenants choose the URLs, so page fetches never reach internal hosts
	fetchOpts := httpclient.Defaults()
	fetchOpts.PublicOnly = true
	extractor := extract.NewExtractor(httpclient.New(log.Named("fetch"), fetchOpts), log.Named("fetch"))

	r := handler.NewRouter(handler.RouterConfig{
		JWTSecret:  cfg.JWTSecret,
		Analysis:   handler.NewAnalysisHandler(db, analyzer, resolver, extractor, rateLimiter, log.Named("http")),
		Dictionary: handler.NewDictionaryHandler(resolver, log.Named("http")),
		Limiter:    rateLimiter,
		Logger:     log.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", "port", cfg.Port, "engine", engine.Name(), "llm_model", cfg.LLMModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
