package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusworks/results-api/api/swagger"
	"github.com/campusworks/results-api/internal/handler"
	"github.com/campusworks/results-api/internal/repository"
	"github.com/campusworks/results-api/internal/service"
	"github.com/campusworks/results-api/pkg/config"
	"github.com/campusworks/results-api/pkg/database"
	"github.com/campusworks/results-api/pkg/export"
	"github.com/campusworks/results-api/pkg/logger"
	corsmiddleware "github.com/campusworks/results-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusworks/results-api/pkg/middleware/requestid"
)

// @title Results API
// @version 1.0.0
// @description Student results management: directory-backed staff login and identity-gated grade access
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	mongoClient, db, err := database.Connect(cfg.Mongo)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to mongodb", "error", err)
	}
	defer database.Disconnect(mongoClient) //nolint:errcheck

	// A nil cache degrades to direct directory reads; CacheRepository
	// methods tolerate a nil receiver.
	var cache *repository.CacheRepository
	if cfg.Directory.CacheEnabled {
		redisClient, err := repository.NewRedis(
			fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, directory cache disabled", "error", err)
		} else {
			cache = repository.NewCacheRepository(redisClient, logr)
			defer cache.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metricsService := service.NewMetricsService()

	institutionRepo := repository.NewInstitutionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)

	authService := service.NewAuthService(institutionRepo, cache, metricsService, validate, logr, service.AuthConfig{
		TokenSecret:  cfg.JWT.Secret,
		TokenExpiry:  cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
		CacheEnabled: cfg.Directory.CacheEnabled && cache != nil,
		CacheTTL:     cfg.Directory.CacheTTL,
	})
	directoryService := service.NewDirectoryService(institutionRepo, cache, validate, logr)
	accessService := service.NewGradeAccessService(studentRepo, gradeRepo, validate, logr)
	gradeService := service.NewGradeService(gradeRepo, validate, logr)
	subjectService := service.NewSubjectService(subjectRepo, validate, logr)
	studentService := service.NewStudentService(studentRepo, validate, logr)
	reportService := service.NewReportService(accessService, export.NewStatementExporter(), logr, cfg.Reports.Enabled)

	metricsHandler := handler.NewMetricsHandler(metricsService)
	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Students:  handler.NewStudentHandler(studentService, accessService, reportService),
		Grades:    handler.NewGradeHandler(gradeService),
		Subjects:  handler.NewSubjectHandler(subjectService),
		Directory: handler.NewDirectoryHandler(directoryService),
		Metrics:   metricsHandler,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authService, metricsService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
