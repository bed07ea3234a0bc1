package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-remedial-api/api/swagger"
	"github.com/noah-isme/sma-remedial-api/internal/handler"
	"github.com/noah-isme/sma-remedial-api/internal/importer"
	internalmiddleware "github.com/noah-isme/sma-remedial-api/internal/middleware"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/repository"
	"github.com/noah-isme/sma-remedial-api/internal/service"
	"github.com/noah-isme/sma-remedial-api/pkg/cache"
	"github.com/noah-isme/sma-remedial-api/pkg/config"
	"github.com/noah-isme/sma-remedial-api/pkg/database"
	"github.com/noah-isme/sma-remedial-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-remedial-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-remedial-api/pkg/middleware/requestid"
)

// @title Remedial Timetable API
// @version 1.0.0
// @description Remedial class timetable: roster import, master timetable editing and per-student schedules
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, logr); err != nil {
		logr.Fatal("failed to apply migrations", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, schedule cache disabled", zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metricsSvc, cfg.Cache.ScheduleTTL, logr, redisClient != nil)
	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewTeacherAssignmentRepository(db)
	slotRepo := repository.NewTimetableSlotRepository(db)
	periodRepo := repository.NewPeriodTimeRepository(db)

	loader := service.NewSnapshotLoader(studentRepo, assignmentRepo, slotRepo, cfg.Timetable.MaxPeriod, metricsSvc, logr)

	rosterSvc := service.NewRosterService(studentRepo, importer.ReadRoster, cacheSvc, cfg.Import.MaxFileSizeBytes, logr)
	assignmentSvc := service.NewTeacherAssignmentService(assignmentRepo, cacheSvc, validate, logr)
	timetableSvc := service.NewTimetableService(slotRepo, periodRepo, loader, cacheSvc, metricsSvc, validate, logr)
	scheduleSvc := service.NewScheduleService(loader, periodRepo, cacheSvc, metricsSvc, cfg.Export.PDFFontPath, cfg.Cache.ScheduleTTL, logr)

	probes := map[string]handler.Probe{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, probes)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	verifier := internalmiddleware.NewTokenVerifier(cfg.JWT.Secret)
	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Roster:      handler.NewRosterHandler(rosterSvc, cfg.Import.MaxFileSizeBytes),
		Assignments: handler.NewAssignmentHandler(assignmentSvc),
		Timetable:   handler.NewTimetableHandler(timetableSvc),
		Schedules:   handler.NewScheduleHandler(scheduleSvc),
	}, internalmiddleware.JWT(verifier), internalmiddleware.RequireRoles(models.RoleAdmin))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
}
