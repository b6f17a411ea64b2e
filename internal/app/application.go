package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Tovoson/multiStats/internal/config"
	"github.com/Tovoson/multiStats/internal/handlers"
	"github.com/Tovoson/multiStats/internal/middleware"
	"github.com/Tovoson/multiStats/internal/models"
	"github.com/Tovoson/multiStats/internal/repository"
	"github.com/Tovoson/multiStats/internal/service"
	"github.com/Tovoson/multiStats/internal/view"
	"github.com/Tovoson/multiStats/pkg/cache"
	"github.com/Tovoson/multiStats/pkg/logger"
	"github.com/Tovoson/multiStats/pkg/navigation"
)

type Application struct {
	cfg *config.Config

	db          *gorm.DB
	cache       *cache.Cache
	rateLimiter *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Kpi         repository.KpiRepository
	StatsPeriod repository.StatsPeriodRepository
}

type serviceContainer struct {
	Kpi *service.KpiService
}

type handlerContainer struct {
	Template *handlers.TemplateHandler
	Menu     *handlers.MenuHandler
	Kpi      *handlers.KpiHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if cfg.EnableStats {
		db, err := OpenDatabase(cfg)
		if err != nil {
			return nil, err
		}
		app.db = db

		if err := Migrate(app.db); err != nil {
			app.closeDatabase()
			return nil, err
		}
	} else {
		logger.Info("Stats API disabled, skipping database", nil)
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	if err := app.initHandlers(); err != nil {
		app.closeResources()
		return nil, err
	}

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"stats":       a.cfg.EnableStats,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	a.closeResources()
	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

// OpenDatabase connects to Postgres through gorm with the pool settings used by the server.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	logger.Info("Connecting to database", map[string]interface{}{"host": cfg.DBHost, "name": cfg.DBName})

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := db.AutoMigrate(
		&models.KpiDaily{},
		&models.StatsPeriod{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initCache() {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{"error": err.Error()})
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	if a.db == nil {
		return
	}

	a.repositories = repositoryContainer{
		Kpi:         repository.NewKpiRepository(a.db),
		StatsPeriod: repository.NewStatsPeriodRepository(a.db),
	}
}

func (a *Application) initServices() {
	if a.db == nil {
		return
	}

	var kpiCache service.KpiCache
	if a.cache.Enabled() {
		kpiCache = a.cache
	}

	a.services = serviceContainer{
		Kpi: service.NewKpiService(a.repositories.Kpi, a.repositories.StatsPeriod, kpiCache),
	}
}

func (a *Application) initHandlers() error {
	renderer, err := view.NewRenderer(view.Site{
		Name:        a.cfg.SiteName,
		Description: a.cfg.SiteDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	templateHandler, err := handlers.NewTemplateHandler(renderer)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	menuHandler, err := handlers.NewMenuHandler(navigation.DefaultMenu())
	if err != nil {
		return fmt.Errorf("invalid navigation menu: %w", err)
	}

	a.handlers = handlerContainer{
		Template: templateHandler,
		Menu:     menuHandler,
	}

	if a.services.Kpi != nil {
		a.handlers.Kpi = handlers.NewKpiHandler(a.services.Kpi)
	}

	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimiter = middleware.NewRateLimitManager(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))
	router.Use(middleware.SecurityHeadersMiddleware(nil, nil))
	router.Use(middleware.NoIndexMiddleware("/api"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.Health)
	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/", a.handlers.Template.RenderIndex)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/menu", a.handlers.Menu.List)

		if a.handlers.Kpi != nil {
			v1.GET("/kpi-daily", a.handlers.Kpi.List)
			v1.POST("/kpi-daily", a.handlers.Kpi.Create)
			v1.GET("/kpi-daily/delta", a.handlers.Kpi.Delta)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		admin.Use(middleware.AdminMiddleware())
		{
			if a.handlers.Kpi != nil {
				admin.POST("/stats-periods", a.handlers.Kpi.CreateStatsPeriod)
			}
			admin.DELETE("/cache", handlers.ClearCache(a.cache))
		}
	}

	router.NoRoute(a.handlers.Template.NotFound)

	a.router = router
}

func (a *Application) closeResources() {
	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	a.closeDatabase()
}

func (a *Application) closeDatabase() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error(err, "Failed to close database connection", nil)
		}
	}
}
