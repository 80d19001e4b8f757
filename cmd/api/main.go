package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/crixfer/DIID-GS/api/swagger"
	"github.com/crixfer/DIID-GS/internal/grading"
	"github.com/crixfer/DIID-GS/internal/handler"
	"github.com/crixfer/DIID-GS/internal/middleware"
	"github.com/crixfer/DIID-GS/internal/repository"
	"github.com/crixfer/DIID-GS/internal/service"
	"github.com/crixfer/DIID-GS/pkg/cache"
	"github.com/crixfer/DIID-GS/pkg/config"
	"github.com/crixfer/DIID-GS/pkg/database"
	"github.com/crixfer/DIID-GS/pkg/logger"
	corsmiddleware "github.com/crixfer/DIID-GS/pkg/middleware/cors"
	reqidmiddleware "github.com/crixfer/DIID-GS/pkg/middleware/requestid"
)

// @title DIID-GS API
// @version 0.1.0
// @description Quarter-scoped gradebook and attendance tracker
// @BasePath /
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

	var redisClient *redis.Client
	if cfg.Scope.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, snapshot caching disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	quarterRepo := repository.NewQuarterRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	noteRepo := repository.NewCalendarNoteRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()

	engine, err := grading.NewEngine(grading.DefaultWeights)
	if err != nil {
		logr.Sugar().Fatalw("invalid grading weights", "error", err)
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scope.SnapshotCacheTTL, logr, cfg.Scope.CacheEnabled && redisClient != nil)

	scopeSvc := service.NewScopeService(studentRepo, gradeRepo, attendanceRepo, noteRepo,
		cacheSvc, metricsSvc, service.ScopeServiceConfig{
			FetchTimeout:   cfg.Scope.FetchTimeout,
			CacheTTL:       cfg.Scope.SnapshotCacheTTL,
			RefreshWorkers: cfg.Scope.RefreshWorkers,
		}, logr)
	scopeSvc.Start(context.Background())
	defer scopeSvc.Stop()

	quarterSvc := service.NewQuarterService(quarterRepo, scopeSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, enrollmentRepo, scopeSvc, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, enrollmentRepo, engine, scopeSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, enrollmentRepo, scopeSvc, validate, logr)
	calendarSvc := service.NewCalendarService(noteRepo, quarterRepo, validate, logr)
	exportSvc := service.NewExportService(studentRepo, gradeRepo, attendanceRepo, service.ExportServiceConfig{
		Enabled:    cfg.Exports.Enabled,
		MaxRows:    cfg.Exports.MaxRows,
		SheetTitle: cfg.Exports.SheetTitle,
	}, logr)
	dashboardSvc := service.NewDashboardService(quarterRepo, enrollmentRepo, gradeRepo, attendanceRepo, cacheSvc, logr)

	quarterHandler := handler.NewQuarterHandler(quarterSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	scopeHandler := handler.NewScopeHandler(scopeSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/quarters", quarterHandler.List)
		api.POST("/quarters", quarterHandler.Create)
		api.GET("/quarters/active", quarterHandler.GetActive)
		api.GET("/quarters/:quarterId", quarterHandler.Get)
		api.PUT("/quarters/:quarterId", quarterHandler.Update)
		api.DELETE("/quarters/:quarterId", quarterHandler.Delete)
		api.POST("/quarters/:quarterId/activate", quarterHandler.Activate)

		api.GET("/students", studentHandler.Search)
		api.PUT("/students/:id", studentHandler.Update)
		api.GET("/quarters/:quarterId/students", studentHandler.Roster)
		api.POST("/quarters/:quarterId/students", studentHandler.Enroll)
		api.DELETE("/quarters/:quarterId/students/:studentId", studentHandler.Unenroll)

		api.GET("/quarters/:quarterId/grades", gradeHandler.ListByQuarter)
		api.GET("/quarters/:quarterId/grades/distribution", gradeHandler.Distribution)
		api.GET("/quarters/:quarterId/grades/report", gradeHandler.Report)
		api.GET("/quarters/:quarterId/grades/:studentId", gradeHandler.Get)
		api.PUT("/quarters/:quarterId/grades/:studentId", gradeHandler.Save)

		api.POST("/quarters/:quarterId/attendance", attendanceHandler.Mark)
		api.POST("/quarters/:quarterId/attendance/bulk", attendanceHandler.MarkBulk)
		api.GET("/quarters/:quarterId/attendance/daily", attendanceHandler.DailySnapshot)
		api.GET("/quarters/:quarterId/attendance/history", attendanceHandler.History)
		api.GET("/quarters/:quarterId/attendance/:studentId/summary", attendanceHandler.StudentSummary)
		api.DELETE("/quarters/:quarterId/attendance/:studentId", attendanceHandler.Unmark)

		api.GET("/quarters/:quarterId/calendar", calendarHandler.Agenda)
		api.POST("/quarters/:quarterId/calendar/notes", calendarHandler.CreateNote)
		api.PUT("/calendar/notes/:id", calendarHandler.UpdateNote)
		api.DELETE("/calendar/notes/:id", calendarHandler.DeleteNote)

		api.GET("/scope", scopeHandler.Snapshot)
		api.PUT("/scope", scopeHandler.Select)

		api.GET("/quarters/:quarterId/exports/roster", exportHandler.Roster)
		api.GET("/quarters/:quarterId/exports/grades", exportHandler.Grades)
		api.GET("/quarters/:quarterId/exports/attendance", exportHandler.Attendance)

		api.GET("/quarters/:quarterId/dashboard", dashboardHandler.Overview)
		api.GET("/dashboard/system", dashboardHandler.System)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
