package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/akademika/sekolahku-api/api/swagger"
	"github.com/akademika/sekolahku-api/internal/handler"
	"github.com/akademika/sekolahku-api/internal/middleware"
	"github.com/akademika/sekolahku-api/internal/models"
	"github.com/akademika/sekolahku-api/internal/repository"
	"github.com/akademika/sekolahku-api/internal/service"
	"github.com/akademika/sekolahku-api/pkg/cache"
	"github.com/akademika/sekolahku-api/pkg/config"
	"github.com/akademika/sekolahku-api/pkg/database"
	"github.com/akademika/sekolahku-api/pkg/jobs"
	"github.com/akademika/sekolahku-api/pkg/logger"
	corsmiddleware "github.com/akademika/sekolahku-api/pkg/middleware/cors"
	reqidmiddleware "github.com/akademika/sekolahku-api/pkg/middleware/requestid"
	"github.com/akademika/sekolahku-api/pkg/storage"
)

// @title Sekolahku API
// @version 1.0.0
// @description Role-scoped school portal backend
// @BasePath /api/v1
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
	cacheEnabled := err == nil
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	store, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init report storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	validate := validator.New()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	parentRepo := repository.NewParentRepository(db)
	classRepo := repository.NewClassRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services.
	metricsSvc := service.NewMetricsService()
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheEnabled)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceDeps{
		Users:         userRepo,
		Students:      studentRepo,
		Teachers:      teacherRepo,
		Parents:       parentRepo,
		Classes:       classRepo,
		Grades:        gradeRepo,
		Attendance:    attendanceRepo,
		Todos:         todoRepo,
		News:          newsRepo,
		Messages:      messageRepo,
		Notifications: notificationRepo,
	}, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	gradeSvc := service.NewGradeService(studentRepo, classRepo, gradeRepo, logr)
	attendanceSvc := service.NewAttendanceService(studentRepo, attendanceRepo, logr)
	todoSvc := service.NewTodoService(studentRepo, todoRepo, cacheSvc, validate, logr, cfg.Todos.CacheTTL)
	newsSvc := service.NewNewsService(newsRepo, userRepo, notificationRepo, nil, validate, logr)
	reportSvc := service.NewReportService(reportRepo, teacherRepo, classRepo, gradeRepo, nil, store, signer, validate, logr)

	// Background queues. The services enqueue through these and also handle
	// the jobs, so the queues are wired after construction.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifyQueue := jobs.NewQueue("notifications", newsSvc.HandleFanout, jobs.QueueConfig{
		Workers: 2,
		Logger:  logr,
	})
	reportQueue := jobs.NewQueue("reports", reportSvc.HandleExport, jobs.QueueConfig{
		Workers:    cfg.Reports.WorkerConcurrency,
		MaxRetries: cfg.Reports.WorkerRetries,
		Logger:     logr,
	})
	notifyQueue.Start(rootCtx)
	reportQueue.Start(rootCtx)
	defer notifyQueue.Stop()
	defer reportQueue.Stop()
	newsSvc.SetQueue(notifyQueue)
	reportSvc.SetQueue(reportQueue)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	todoHandler := handler.NewTodoHandler(todoSvc)
	newsHandler := handler.NewNewsHandler(newsSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

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

	authed := api.Group("", middleware.JWT(authSvc))
	{
		dashboard := authed.Group("/dashboard")
		dashboard.GET("/admin", middleware.RequireRole(models.RoleAdmin), dashboardHandler.Admin)
		dashboard.GET("/teacher", middleware.RequireRole(models.RoleTeacher), dashboardHandler.Teacher)
		dashboard.GET("/student", middleware.RequireRole(models.RoleStudent), dashboardHandler.Student)
		dashboard.GET("/parent", middleware.RequireRole(models.RoleParent), dashboardHandler.Parent)

		student := authed.Group("/student", middleware.RequireRole(models.RoleStudent))
		student.GET("/grades", gradeHandler.StudentGrades)
		student.GET("/attendance", attendanceHandler.StudentAttendance)
		student.GET("/todos", todoHandler.List)
		student.POST("/todos", todoHandler.Create)
		student.PUT("/todos/:id", todoHandler.Update)
		student.PATCH("/todos/:id/toggle", todoHandler.Toggle)
		student.DELETE("/todos/:id", todoHandler.Delete)

		authed.GET("/news", newsHandler.List)
		authed.POST("/news", middleware.RequireRole(models.RoleAdmin), newsHandler.Create)

		reports := authed.Group("/reports", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
		reports.POST("", reportHandler.Create)
		reports.GET("/:id", reportHandler.Status)
	}
	// Downloads carry their own signed token instead of a session.
	api.GET("/reports/download", reportHandler.Download)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
