package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/monitoring-admin-api/api/swagger"
	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/handler"
	"github.com/noah-isme/monitoring-admin-api/internal/middleware"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
	"github.com/noah-isme/monitoring-admin-api/internal/repository"
	"github.com/noah-isme/monitoring-admin-api/internal/service"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
	"github.com/noah-isme/monitoring-admin-api/pkg/cache"
	"github.com/noah-isme/monitoring-admin-api/pkg/config"
	"github.com/noah-isme/monitoring-admin-api/pkg/database"
	"github.com/noah-isme/monitoring-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/monitoring-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/monitoring-admin-api/pkg/middleware/requestid"
)

// @title Monitoring Admin Console API
// @version 1.0.0
// @description User administration list pages backed by the monitoring API
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

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgres(startCtx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Settings.CacheEnabled {
		client, err := cache.NewRedis(startCtx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, settings cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Settings.CacheTTL, logr, cacheRepo != nil)

	var profiles preference.Backend
	switch cfg.Profiles.Backend {
	case config.ProfilesBackendMemory:
		logr.Warn("user preferences are kept in memory and lost on restart")
		profiles = preference.NewMemoryBackend()
	default:
		profiles = repository.NewProfileRepository(db, metricsSvc)
	}

	settingsRepo := repository.NewSettingsRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	gw := gateway.NewClient(gateway.Config{
		URL:      cfg.Gateway.URL,
		APIToken: cfg.Gateway.APIToken,
		Timeout:  cfg.Gateway.Timeout,
	}, nil, metricsSvc, logr)

	validate := validator.New()
	rules := validation.New(validate)
	guard := access.NewGuard()

	settingsSvc := service.NewSettingsService(settingsRepo, cacheSvc, logr, service.SettingsServiceConfig{
		Defaults: models.GlobalSettings{
			SearchLimit:   cfg.Settings.SearchLimit,
			RowsPerPage:   cfg.Settings.RowsPerPage,
			MaxInTable:    cfg.Settings.MaxInTable,
			LoginAttempts: cfg.Settings.LoginAttempts,
		},
		CacheTTL: cfg.Settings.CacheTTL,
	})
	authSvc := service.NewAuthService(gw, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userListSvc := service.NewUserListService(gw, sessionRepo, settingsSvc, guard, rules, metricsSvc, logr)
	userGroupListSvc := service.NewUserGroupListService(gw, settingsSvc, guard, rules, metricsSvc, logr)
	exportSvc := service.NewExportService(userListSvc, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userListHandler := handler.NewUserListHandler(userListSvc, exportSvc, profiles)
	userGroupListHandler := handler.NewUserGroupListHandler(userGroupListSvc, profiles)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	readiness := map[string]handler.Pinger{"database": settingsRepo}
	if cacheRepo != nil {
		readiness["redis"] = cacheRepo
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(authSvc))
	secured.GET("/users", userListHandler.List)
	secured.POST("/users", userListHandler.List)
	secured.GET("/users/export", userListHandler.Export)
	secured.GET("/usergroups", userGroupListHandler.List)
	secured.POST("/usergroups", userGroupListHandler.List)
	secured.POST("/settings/refresh", settingsHandler.Refresh)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "profiles", cfg.Profiles.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
