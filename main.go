package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/content-readiness/backend/analyzer"
	"github.com/content-readiness/backend/logging"
	"github.com/content-readiness/backend/middleware"
	"github.com/content-readiness/backend/service"
)

func loadEnv() {
	// .env.development wins for local development, then plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			return
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func configFromEnv() analyzer.Config {
	cfg := analyzer.DefaultConfig()
	if domain := os.Getenv("SITE_DOMAIN"); domain != "" {
		cfg.SiteDomain = domain
	}
	if keyword := os.Getenv("PRIMARY_KEYWORD"); keyword != "" {
		cfg.PrimaryKeyword = keyword
	}
	return cfg
}

func main() {
	loadEnv()
	setupGinMode()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	svc, err := service.New(configFromEnv(), dataDir)
	if err != nil {
		logger.Fatal("failed to initialize service", zap.Error(err))
	}

	rateLimiter := middleware.NewRateLimiter(2, 5)
	requestStats := logging.Initialize()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(rateLimiter.RateLimit())
	r.Use(corsMiddleware())
	r.Use(middleware.Stats(requestStats))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/analyze", analyzeHandler(svc, logger))
		api.POST("/extract", extractHandler(svc, logger))
		api.POST("/slug", slugHandler(svc))
		api.GET("/statistics", func(c *gin.Context) {
			stats := requestStats.GetStatistics()
			stats["cache"] = svc.CacheStats()
			stats["month"] = svc.Stats().GetCurrentStats()
			c.JSON(http.StatusOK, stats)
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := svc.Shutdown(); err != nil {
		logger.Error("service shutdown failed", zap.Error(err))
	}
	if err := requestStats.Save(); err != nil {
		logger.Error("failed to save statistics", zap.Error(err))
	}
	srv.Close()
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func analyzeHandler(svc *service.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record analyzer.ContentRecord
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid content record: " + err.Error(),
			})
			return
		}

		middleware.SetAnalyzedKeywords(c, record.TargetKeywords)

		report := svc.Analyze(c.Request.Context(), record)
		logger.Debug("analysis completed",
			zap.String("slug", record.Slug),
			zap.Int("score", report.Score),
			zap.Bool("ready", report.ReadyToPublish()),
		)
		c.JSON(http.StatusOK, gin.H{
			"report":         report,
			"readyToPublish": report.ReadyToPublish(),
		})
	}
}

func extractHandler(svc *service.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			HTML    string `json:"html" binding:"required"`
			Analyze bool   `json:"analyze"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing html field"})
			return
		}

		record, err := analyzer.RecordFromHTML(strings.NewReader(request.HTML), svc.Checker().Config())
		if err != nil {
			logger.Warn("html extraction failed", zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not parse HTML: " + err.Error()})
			return
		}

		response := gin.H{"record": record}
		if request.Analyze {
			report := svc.Analyze(c.Request.Context(), record)
			response["report"] = report
			response["readyToPublish"] = report.ReadyToPublish()
		}
		c.JSON(http.StatusOK, response)
	}
}

func slugHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Title     string   `json:"title" binding:"required"`
			UsedSlugs []string `json:"usedSlugs"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title field"})
			return
		}

		cfg := svc.Checker().Config()
		used := make(map[string]bool, len(request.UsedSlugs))
		for _, slug := range request.UsedSlugs {
			used[slug] = true
		}

		slug := analyzer.GenerateSlug(request.Title, cfg)
		c.JSON(http.StatusOK, gin.H{
			"slug":      analyzer.AvailableSlug(slug, used, cfg),
			"base":      slug,
			"isOptimal": analyzer.IsSlugOptimal(slug, cfg),
		})
	}
}
