package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/halcyonworks/compass/internal/assessment"
	"github.com/halcyonworks/compass/internal/cache"
	"github.com/halcyonworks/compass/internal/catalog"
	"github.com/halcyonworks/compass/internal/config"
	"github.com/halcyonworks/compass/internal/errors"
	"github.com/halcyonworks/compass/internal/middleware"
	"github.com/halcyonworks/compass/internal/monitoring"
	"github.com/halcyonworks/compass/internal/ratelimit"
	"github.com/halcyonworks/compass/internal/security"
	"github.com/halcyonworks/compass/internal/types"
	"github.com/halcyonworks/compass/internal/workflow"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Configuration from environment with defaults
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	r, cleanup, err := setupRouter(cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter builds the scoring engine, the workflow planner, and the full
// route table around them. The returned cleanup function stops the
// background goroutines the router owns.
func setupRouter(cfg *config.Config) (*gin.Engine, func(), error) {
	// Rule tables: built-in catalog unless an overlay is configured
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
		cat = loaded
		slog.Info("Loaded catalog overlay", "path", cfg.CatalogPath, "questions", len(cat.Questions()))
	}

	engine := assessment.NewEngine(cat)
	planner := workflow.NewPlanner(cat)

	// Initialize monitoring system
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()
	appLogger.SetLevel(cfg.SlogLevel())

	// Rate limiting: Redis when configured, in-memory fallback otherwise
	redisClient, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("Continuing without Redis rate limiting", "error", err)
	}

	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin:   cfg.RateLimitPerMinute,
		BurstMultiplier: cfg.RateLimitBurstMult,
		EnableFallback:  cfg.RateLimitFallback,
		CleanupInterval: time.Hour,
	}, appMetrics)

	appCache := cache.NewCache(cfg.CacheTTL)
	compressor := middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig())

	// Security middleware setup
	securityConfig := security.DefaultSecurityConfig()
	securityConfig.MaxBodyBytes = cfg.MaxBodyBytes
	securityConfig.RequestTimeout = cfg.RequestTimeout
	sm := security.NewSecurityMiddleware(securityConfig)

	r := gin.New()
	if err := r.SetTrustedProxies(sm.TrustedProxies()); err != nil {
		return nil, nil, err
	}

	// Add monitoring middleware first (to capture all requests)
	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))
	r.Use(monitoring.SecurityMonitoringMiddleware(appLogger))

	// Add error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	// Add security middleware
	r.Use(security.SecurityHeadersMiddleware(cfg.EnableHSTS))
	r.Use(sm.MaxBodySize)
	r.Use(sm.ValidateContentType)
	r.Use(sm.RequestTimeout)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With", monitoring.RequestIDHeader},
		ExposeHeaders:    []string{monitoring.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(limiter.IPRateLimitMiddleware())

	// Compression sits outside the cache so cached entries stay plaintext
	// and hits are re-encoded per client
	r.Use(compressor.Handler())

	// Scoring and catalog responses are pure functions of the request for a
	// fixed catalog, so identical requests are served from cache
	r.Use(appCache.Middleware(appMetrics,
		"/api/v1/assessment/score",
		"/api/v1/catalog/questions",
		"/api/v1/catalog/categories",
		"/api/v1/catalog/templates",
		"/api/v1/catalog/stations",
		"/api/v1/catalog/programs",
	))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"catalog": gin.H{
				"questions":  len(cat.Questions()),
				"follow_ups": len(cat.FollowUps()),
				"stations":   len(cat.Stations()),
				"programs":   len(cat.Programs()),
			},
			"metrics": appMetrics.GetStats(),
		})
	})

	// Scoring gets a tighter per-IP budget than the global limit because it
	// runs the whole rule pipeline on every miss
	r.POST("/api/v1/assessment/score",
		limiter.EndpointRateLimitMiddleware("/api/v1/assessment/score", cfg.RateLimitPerMinute),
		func(c *gin.Context) {
			start := time.Now()

			var req types.ScoreRequest
			if !bindJSON(c, &req) {
				return
			}

			slog.Info("Scoring assessment", "answers", len(req.Answers), "ip", c.ClientIP())

			answers, appErr := cleanAnswers(sm, req.Answers)
			if appErr != nil {
				errors.LogError(c, appErr)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}

			scores := engine.Score(answers)

			appMetrics.IncrementAssessmentScored()
			appLogger.AssessmentLogger(
				scores.AnsweredQuestions,
				scores.TotalQuestions,
				scores.OverallScore,
				string(scores.RiskProfile.Level),
				string(scores.Recommendation.Pathway),
				time.Since(start),
			)

			c.JSON(http.StatusOK, scores)
		})

	r.POST("/api/v1/assessment/complete", func(c *gin.Context) {
		var req types.ScoreRequest
		if !bindJSON(c, &req) {
			return
		}

		answered, total := engine.Progress(req.Answers)
		completion := 0
		if total > 0 {
			completion = int(math.Round(float64(answered) / float64(total) * 100))
		}

		c.JSON(http.StatusOK, gin.H{
			"complete":              engine.Complete(req.Answers),
			"answered_questions":    answered,
			"total_questions":       total,
			"completion_percentage": completion,
		})
	})

	r.POST("/api/v1/assessment/next-question", func(c *gin.Context) {
		var req types.ScoreRequest
		if !bindJSON(c, &req) {
			return
		}

		next := engine.NextQuestion(req.Answers)
		c.JSON(http.StatusOK, gin.H{
			"question": next,
			"complete": next == nil,
		})
	})

	r.POST("/api/v1/workflow/stations/:id/validate", func(c *gin.Context) {
		start := time.Now()
		stationID := c.Param("id")

		// The planner treats unknown stations as having no requirements;
		// the API rejects them instead so typos stay visible
		if _, ok := cat.Station(stationID); !ok {
			appErr := errors.NewNotFoundError("station", stationID)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		var req types.ValidateStationRequest
		if !bindJSON(c, &req) {
			return
		}

		if appErr := validateWorkflowRefs(req.Artifacts, req.Stations); appErr != nil {
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		result := planner.ValidateStation(stationID, req.Artifacts, req.Stations)

		appMetrics.IncrementStationValidation()
		appLogger.WorkflowLogger("validate_station", stationID, result.CanRun, time.Since(start))

		c.JSON(http.StatusOK, result)
	})

	r.POST("/api/v1/workflow/stations/available", func(c *gin.Context) {
		start := time.Now()

		var req types.AvailableStationsRequest
		if !bindJSON(c, &req) {
			return
		}

		if appErr := validateWorkflowRefs(req.Artifacts, req.Stations); appErr != nil {
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		stations, err := planner.AvailableStations(catalog.Program(req.Program), req.Artifacts, req.Stations)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementStationValidation()
		appLogger.WorkflowLogger("available_stations", req.Program, true, time.Since(start))

		c.JSON(http.StatusOK, gin.H{
			"program":  req.Program,
			"stations": stations,
		})
	})

	r.POST("/api/v1/workflow/stage", func(c *gin.Context) {
		start := time.Now()

		var req types.StageRequest
		if !bindJSON(c, &req) {
			return
		}

		if appErr := validateWorkflowRefs(req.Artifacts, nil); appErr != nil {
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		info, err := planner.CurrentStage(catalog.Program(req.Program), req.Artifacts)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementStageLookup()
		appLogger.WorkflowLogger("current_stage", req.Program, true, time.Since(start))

		c.JSON(http.StatusOK, info)
	})

	// Catalog read endpoints for UI consumption
	r.GET("/api/v1/catalog/questions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"questions":  cat.Questions(),
			"follow_ups": cat.FollowUps(),
		})
	})

	r.GET("/api/v1/catalog/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": cat.Categories()})
	})

	r.GET("/api/v1/catalog/templates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"artifact_templates": cat.Templates()})
	})

	r.GET("/api/v1/catalog/stations", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"stations": cat.Stations()})
	})

	r.GET("/api/v1/catalog/programs", func(c *gin.Context) {
		programs := make([]gin.H, 0, len(cat.Programs()))
		for _, p := range cat.Programs() {
			stages, _ := cat.Stages(p)
			stationIDs, _ := cat.ProgramStations(p)
			programs = append(programs, gin.H{
				"program":  p,
				"stages":   stages,
				"stations": stationIDs,
			})
		}

		pathways := gin.H{}
		for _, pw := range []catalog.Pathway{catalog.PathwayAccelerated, catalog.PathwayStandard, catalog.PathwayExtended} {
			if program, ok := cat.ProgramFor(pw); ok {
				pathways[string(pw)] = program
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"programs":            programs,
			"program_for_pathway": pathways,
		})
	})

	// Metrics endpoint
	r.GET("/api/v1/metrics", func(c *gin.Context) {
		stats := appMetrics.GetStats()
		stats["compression"] = compressor.GetStats()
		c.JSON(http.StatusOK, stats)
	})

	// Cache stats endpoint
	r.GET("/api/v1/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})

	// Rate limit status and admin endpoints
	r.GET("/api/v1/ratelimit/status", limiter.HandleRateLimitStatus())
	r.GET("/api/v1/admin/ratelimit", limiter.HandleAdminRateLimits())
	r.POST("/api/v1/admin/ratelimit/invalidate/:ip", limiter.HandleAdminInvalidateIP())

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cleanup := func() {
		appCache.Close()
		limiter.Close()
		redisClient.Close()
	}

	return r, cleanup, nil
}

// bindJSON decodes the request body into out, answering malformed payloads
// with the validation envelope.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		appErr := errors.NewValidationError("invalid request body", err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return false
	}
	return true
}

// cleanAnswers validates and sanitizes free-text answer fields before they
// reach the engine.
func cleanAnswers(sm *security.SecurityMiddleware, answers []assessment.Answer) ([]assessment.Answer, *errors.AppError) {
	for i := range answers {
		fields := append([]string{answers[i].Value, answers[i].Notes}, answers[i].Values...)
		for _, field := range fields {
			if err := sm.ValidateInput(field); err != nil {
				return nil, errors.NewValidationError(
					fmt.Sprintf("answer %q rejected: %s", answers[i].QuestionID, err.Error()))
			}
		}

		answers[i].Value = sm.SanitizeInput(answers[i].Value)
		answers[i].Notes = sm.SanitizeInput(answers[i].Notes)
		for j := range answers[i].Values {
			answers[i].Values[j] = sm.SanitizeInput(answers[i].Values[j])
		}
	}
	return answers, nil
}

// validateWorkflowRefs rejects unknown lifecycle statuses at the boundary so
// the planner only ever sees the documented vocabulary.
func validateWorkflowRefs(artifacts []workflow.ArtifactRef, stations []workflow.StationRun) *errors.AppError {
	for _, a := range artifacts {
		if !a.Status.Valid() {
			return errors.NewValidationError(
				fmt.Sprintf("unknown artifact status %q for template %s", a.Status, a.TemplateID))
		}
	}
	for _, s := range stations {
		if !s.Status.Valid() {
			return errors.NewValidationError(
				fmt.Sprintf("unknown station status %q for station %s", s.Status, s.StationID))
		}
	}
	return nil
}
