package app

import (
	"context"
	"errors"
	"lms_authoring_backend/internal/config"
	"lms_authoring_backend/internal/controller"
	"lms_authoring_backend/internal/middleware"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/service"
	"lms_authoring_backend/pkg/configwatcher"
	"lms_authoring_backend/pkg/logger"
	"lms_authoring_backend/pkg/monitoring"
	"lms_authoring_backend/pkg/security"
	"lms_authoring_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine

	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	cfgMu           sync.RWMutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	assessment *repository.AssessmentRepository
	authoring  *repository.AuthoringSessionRepository
	preview    *repository.PreviewSessionRepository
	submission *repository.SubmissionRepository
	debate     *repository.DebateRepository
	attendance *repository.AttendanceRepository
}

type services struct {
	authoring  *service.AuthoringService
	assessment *service.AssessmentService
	preview    *service.PreviewService
	submission *service.SubmissionService
	debate     *service.DebateService
	attendance *service.AttendanceService
}

type controllers struct {
	authoring  *controller.AuthoringController
	assessment *controller.AssessmentController
	preview    *controller.PreviewController
	submission *controller.SubmissionController
	debate     *controller.DebateController
	attendance *controller.AttendanceController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories() *repositories {
	return &repositories{
		assessment: repository.NewAssessmentRepository(),
		authoring:  repository.NewAuthoringSessionRepository(),
		preview:    repository.NewPreviewSessionRepository(),
		submission: repository.NewSubmissionRepository(),
		debate:     repository.NewDebateRepository(),
		attendance: repository.NewAttendanceRepository(),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.authoring = service.NewAuthoringService(repos.authoring, repos.assessment)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.submission)
	s.submission = service.NewSubmissionService(repos.submission, repos.assessment, repos.debate)
	s.preview = service.NewPreviewService(repos.preview, repos.assessment, s.submission)
	s.debate = service.NewDebateService(repos.debate, repos.submission, cfg.Scoring.DebateMaxScore)
	s.attendance = service.NewAttendanceService(repos.attendance, cfg.Attendance.Location())

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		authoring:  controller.NewAuthoringController(s.authoring),
		assessment: controller.NewAssessmentController(s.assessment),
		preview:    controller.NewPreviewController(s.preview),
		submission: controller.NewSubmissionController(s.submission),
		debate:     controller.NewDebateController(s.debate),
		attendance: controller.NewAttendanceController(s.attendance),
		health:     controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 组装应用但不初始化全局日志与追踪，测试直接使用
func New(cfg *config.Config) *App {
	app := &App{
		Config:  cfg,
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
	}

	repos := app.initRepositories()
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		loc := newCfg.Attendance.Location()
		services.attendance.SetLocation(loc)
		logger.Log.Info("Attendance timezone updated", zap.String("timezone", loc.String()))
	})

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app := New(cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// applyConfig 热更新时依次执行回调
func (a *App) applyConfig(newCfg *config.Config) {
	a.cfgMu.Lock()
	a.Config = newCfg
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.cfgMu.Unlock()

	for _, cb := range callbacks {
		cb(newCfg)
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go a.limiter.Run(ctx)

	if a.Config.Path != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.Path, a.applyConfig); err != nil {
				logger.Log.Warn("Config watcher disabled", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
