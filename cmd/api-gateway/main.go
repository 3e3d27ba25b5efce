package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/grigorev-dev/timetable-api/api/swagger"
	"github.com/grigorev-dev/timetable-api/internal/handler"
	"github.com/grigorev-dev/timetable-api/internal/middleware"
	"github.com/grigorev-dev/timetable-api/internal/repository"
	"github.com/grigorev-dev/timetable-api/internal/service"
	"github.com/grigorev-dev/timetable-api/internal/timetable"
	"github.com/grigorev-dev/timetable-api/pkg/cache"
	"github.com/grigorev-dev/timetable-api/pkg/config"
	"github.com/grigorev-dev/timetable-api/pkg/database"
	"github.com/grigorev-dev/timetable-api/pkg/logger"
	corsmiddleware "github.com/grigorev-dev/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/grigorev-dev/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 1.0.0
// @description Weekly timetable scheduling for study groups
// @BasePath /api
// @schemes http

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

	var db *sqlx.DB
	db, err = database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Warnw("postgres unavailable, saved schedules and accounts disabled", "error", err)
		db = nil
	} else {
		defer db.Close() //nolint:errcheck
	}

	var redisClient *redis.Client
	if cfg.Stats.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, statistics cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	store := timetable.NewStore(timetable.Options{
		CrossGroupExclusive: cfg.Scheduler.CrossGroupExclusive,
		DefaultGroupName:    cfg.Scheduler.DefaultGroupName,
	}, logr)

	validate := validator.New()

	statsCache := repository.NewCacheRepository(redisClient, logr)

	var savedRepo *repository.SavedScheduleRepository
	var userRepo *repository.UserRepository
	if db != nil {
		savedRepo = repository.NewSavedScheduleRepository(db)
		userRepo = repository.NewUserRepository(db)
	}

	metricsService := service.NewMetricsService()
	statisticsService := service.NewStatisticsService(store, statsCache, cfg.Stats.CacheTTL, logr)
	teacherService := service.NewTeacherService(store, statisticsService, validate, logr)
	subjectService := service.NewSubjectService(store, statisticsService, validate, logr)
	filterService := service.NewFilterService(store, validate, logr)
	scheduleService := service.NewScheduleService(store, statisticsService, validate, logr)
	var exportService *service.ExportService
	var savedService *service.SavedScheduleService
	var groupService *service.GroupService
	if savedRepo != nil {
		exportService = service.NewExportService(store, savedRepo, logr)
		savedService = service.NewSavedScheduleService(store, savedRepo, statisticsService, validate, logr)
		groupService = service.NewGroupService(store, savedRepo, statisticsService, validate, logr)
	} else {
		exportService = service.NewExportService(store, nil, logr)
		groupService = service.NewGroupService(store, nil, statisticsService, validate, logr)
	}

	var authService *service.AuthService
	if cfg.Auth.Enabled && userRepo != nil {
		authService = service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
			Secret:     cfg.JWT.Secret,
			Expiration: cfg.JWT.Expiration,
		})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	metricsHandler := handler.NewMetricsHandler(metricsService)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Teachers:   handler.NewTeacherHandler(teacherService),
		Groups:     handler.NewGroupHandler(groupService),
		Subjects:   handler.NewSubjectHandler(subjectService),
		Schedules:  handler.NewScheduleHandler(scheduleService, metricsService),
		Filters:    handler.NewFilterHandler(filterService),
		Statistics: handler.NewStatisticsHandler(statisticsService),
		Exports:    handler.NewExportHandler(exportService),
	}
	if savedService != nil {
		handlers.Saved = handler.NewSavedScheduleHandler(savedService)
	}
	if authService != nil {
		handlers.Auth = handler.NewAuthHandler(authService)
	}
	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
