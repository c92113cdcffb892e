package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	_ "github.com/sarveshkp/bhashik/docs"
	"github.com/sarveshkp/bhashik/internal/config"
	"github.com/sarveshkp/bhashik/internal/controllers"
	"github.com/sarveshkp/bhashik/internal/db"
	"github.com/sarveshkp/bhashik/internal/detect"
	"github.com/sarveshkp/bhashik/internal/logger"
	"github.com/sarveshkp/bhashik/internal/metrics"
	"github.com/sarveshkp/bhashik/internal/middleware"
	"github.com/sarveshkp/bhashik/internal/repository"
	"github.com/sarveshkp/bhashik/internal/romanize"
	"github.com/sarveshkp/bhashik/internal/translate"
)

// Package main Bhashik API
//
// @title           Bhashik API
// @version         1.0
// @description     Multilingual text analysis: language detection for English, Indic, romanized and code-mixed text, with sentiment, toxicity and script conversion.
// @BasePath        /
func main() {
	cfg := config.MustLoad(context.Background())

	applog := logger.New()
	log := applog.Logger
	if lvl, err := logrus.ParseLevel(cfg.Logger.Level); err == nil {
		log.SetLevel(lvl)
	}

	baseEntry := applog.WithService("bhashik")

	// Postgres is optional: without it the service still detects and
	// analyses, but feedback and learning stats are disabled.
	var history repository.HistoryRepository
	var pinger db.Pinger
	pool, err := db.New(context.Background(), cfg.Database)
	if err != nil {
		if cfg.Strict {
			log.WithError(err).Fatal("failed to connect to database")
		}
		baseEntry.WithError(err).Warn("database unavailable; feedback and history disabled")
	} else {
		defer pool.Close()
		history = repository.NewPostgresHistoryRepo(pool)
		pinger = pool
	}

	var rdb *redis.Client
	var cache *repository.DetectionCache
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		// Best-effort ping on startup
		pingCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			baseEntry.WithError(err).Warn("redis ping failed; proceeding without cache")
			rdb = nil
		} else {
			baseEntry.WithField("addr", cfg.Redis.Addr).Info("redis connected")
			cache = repository.NewDetectionCache(rdb, cfg.Redis.Prefix, cfg.Redis.TTL)
		}
		cancel()
	}

	detector := detect.New(detect.DefaultConfig())
	converter := romanize.New(detector.Config())
	var translator *translate.Client
	if cfg.Translate.BackendURL != "" {
		translator = translate.New(cfg.Translate.BackendURL, cfg.Translate.Timeout, converter)
	}

	baseEntry.WithFields(logrus.Fields{
		"http_addr":         cfg.HTTP.Host,
		"req_timeout":       cfg.HTTP.RequestTimeout.String(),
		"shutdown_timeout":  cfg.HTTP.ShutdownTimeout.String(),
		"db_query_timeout":  cfg.Database.QueryTimeout.String(),
		"cache_enabled":     cache != nil,
		"translate_backend": cfg.Translate.BackendURL != "",
	}).Info("config loaded")

	r := gin.New()
	p := ginprometheus.NewPrometheus("bhashik")
	p.Use(r)
	metrics.RegisterMetrics()
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.TraceMiddleware(log))
	r.Use(middleware.LoggerMiddleware(log))

	reqTimeout := cfg.HTTP.RequestTimeout
	if reqTimeout <= 0 {
		reqTimeout = 30 * time.Second
		baseEntry.WithField("effective_req_timeout", reqTimeout.String()).
			Warn("HTTP request timeout was 0; using default")
	}
	r.Use(middleware.TimeoutMiddleware(reqTimeout))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	dc := controllers.NewDetectController(detector, cache, history, converter, translator, baseEntry)
	ac := controllers.NewAdminController(detector, cache, history, baseEntry)
	hc := controllers.NewHealthController(pinger, rdb, baseEntry, time.Now(), "1.0.0")

	r.GET("/health", middleware.TimeoutMiddleware(2*time.Second), hc.Handle)

	r.POST("/detect", dc.Detect)
	r.POST("/analyze", dc.Analyze)
	r.POST("/sentiment", dc.Sentiment)
	r.POST("/toxicity", dc.Toxicity)
	r.POST("/profanity", dc.Profanity)
	r.POST("/convert", dc.Convert)
	r.POST("/translate", dc.Translate)

	r.POST("/feedback", ac.SubmitFeedback)
	r.GET("/learning/stats", ac.LearningStats)
	r.PATCH("/config/detection", ac.UpdateDetectionConfig)
	r.GET("/config/detection", ac.GetDetectionConfig)
	r.GET("/cache/stats", ac.CacheStats)
	r.DELETE("/cache/clear", ac.CacheClear)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Not Found"})
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Host,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	srv.RegisterOnShutdown(func() {
		baseEntry.Info("closing database connection pool")
	})

	go func() {
		log.WithField("addr", cfg.HTTP.Host).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	baseEntry.WithFields(logrus.Fields{"signal": sig.String(), "grace_period_sec": cfg.HTTP.ShutdownTimeout}).Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseEntry.WithError(err).Error("shutdown error")
	} else {
		baseEntry.Info("server exited properly")
	}
}
