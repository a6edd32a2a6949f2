package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/classsync/classsync-api/api/swagger"
	"github.com/classsync/classsync-api/internal/handler"
	internalmiddleware "github.com/classsync/classsync-api/internal/middleware"
	"github.com/classsync/classsync-api/internal/repository"
	"github.com/classsync/classsync-api/internal/seating"
	"github.com/classsync/classsync-api/internal/service"
	"github.com/classsync/classsync-api/internal/timetable"
	"github.com/classsync/classsync-api/pkg/cache"
	"github.com/classsync/classsync-api/pkg/config"
	"github.com/classsync/classsync-api/pkg/database"
	"github.com/classsync/classsync-api/pkg/export"
	"github.com/classsync/classsync-api/pkg/logger"
	corsmiddleware "github.com/classsync/classsync-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classsync/classsync-api/pkg/middleware/requestid"
	"github.com/classsync/classsync-api/pkg/storage"
)

// @title ClassSync API
// @version 1.0.0
// @description Timetable generation, teacher-absence remediation and exam seating
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, schedule caching disabled", zap.Error(err))
		redisClient = nil
	}

	entityRepo := repository.NewEntityRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := timetable.NewGenerator(rng)
	adjuster := timetable.NewAdjuster(rng, cfg.Scheduler.RescheduleLimit)
	solver := seating.NewSolver(seating.Weights{
		Horizontal: cfg.Seating.HorizontalPenalty,
		Vertical:   cfg.Seating.VerticalPenalty,
	}, rng)

	metricsSvc := service.NewMetricsService()

	timetableCfg := service.TimetableConfig{CacheTTL: cfg.Scheduler.CacheTTL, Metrics: metricsSvc}
	var timetableSvc *service.TimetableService
	if redisClient != nil {
		timetableSvc = service.NewTimetableService(entityRepo, entryRepo, overrideRepo, cache.NewStore(redisClient), generator, nil, logr, timetableCfg)
	} else {
		timetableSvc = service.NewTimetableService(entityRepo, entryRepo, overrideRepo, nil, generator, nil, logr, timetableCfg)
	}
	adjustmentSvc := service.NewAdjustmentService(entityRepo, entryRepo, overrideRepo, adjuster, nil, logr, metricsSvc)
	seatingSvc := service.NewSeatingService(solver, nil, logr, service.SeatingConfig{SolverTimeout: cfg.Seating.SolverTimeout, Metrics: metricsSvc})
	var archiveSvc *service.ArchiveService
	if cfg.Exports.Enabled {
		archiveStore, err := storage.NewArchiveStore(cfg.Exports.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export archive", "error", err)
		}
		archiveSvc = service.NewArchiveService(archiveStore, logr, service.ArchiveConfig{
			Workers:      2,
			RetentionTTL: cfg.Exports.ArchiveTTL,
		})
		archiveSvc.Start(context.Background())
		defer archiveSvc.Stop()
	}

	var exportSvc *service.ExportService
	if archiveSvc != nil {
		exportSvc = service.NewExportService(entryRepo, export.NewCSVExporter(), export.NewPDFExporter(), archiveSvc, logr)
	} else {
		exportSvc = service.NewExportService(entryRepo, export.NewCSVExporter(), export.NewPDFExporter(), nil, logr)
	}

	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	adjustmentHandler := handler.NewAdjustmentHandler(adjustmentSvc)
	seatingHandler := handler.NewSeatingHandler(seatingSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)
	api.GET("/ready", metricsHandler.Health)

	api.POST("/generate", timetableHandler.Generate)
	api.POST("/save_schedule", timetableHandler.Save)
	api.GET("/saved_schedules", timetableHandler.ListSaved)
	api.POST("/delete_schedule", timetableHandler.Delete)
	api.POST("/clear_all_schedules", timetableHandler.ClearAll)
	api.GET("/schedule/view/:sectionName", timetableHandler.DailyView)

	api.POST("/adjustments/find-solutions", adjustmentHandler.FindSolutions)
	api.POST("/adjustments/apply-solution", adjustmentHandler.ApplySolution)

	api.POST("/generate_exam_seating", seatingHandler.Generate)

	if cfg.Exports.Enabled {
		api.GET("/export/timetable/:sectionName", exportHandler.Timetable)
		api.POST("/export/seating", exportHandler.SeatingChart)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
