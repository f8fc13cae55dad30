package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/medbot-analytics/docs"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/route"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/repository"
	"github.com/hugohenrick/medbot-analytics/internal/domain/widget"
	"github.com/hugohenrick/medbot-analytics/internal/infrastructure/database"
	"github.com/hugohenrick/medbot-analytics/internal/scheduler"
	"github.com/hugohenrick/medbot-analytics/internal/service/analytics"
	"github.com/hugohenrick/medbot-analytics/pkg/auth"
	"github.com/hugohenrick/medbot-analytics/pkg/gemini"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
	"github.com/hugohenrick/medbot-analytics/pkg/nlquery"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App representa a aplicação e suas dependências
type App struct {
	router    *gin.Engine
	logger    logger.Logger
	pool      *pgxpool.Pool
	firestore *firestore.Client
	registry  *scheduler.Registry
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()
	ctx := context.Background()

	// Configurar banco de dados Postgres (operadores, widgets, auditoria)
	pool, err := database.NewPostgresPool(ctx)
	if err != nil {
		return nil, err
	}

	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := database.RunMigrations(); err != nil {
			pool.Close()
			return nil, err
		}
	}

	// Conectar no Firestore (fonte de dados do chatbot)
	fsClient, err := database.NewFirestoreClient(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(pool)
	widgetRepo := repository.NewWidgetRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	source := repository.NewFirestoreSource(fsClient, log)

	// Serviço de métricas do dashboard
	service := analytics.NewService(source, log)

	// Registrar os widgets no agendador de atualizações
	registry := scheduler.NewRegistry(widgetRepo, log)
	registerWidgets(registry, service)
	if err := registry.Start(ctx); err != nil {
		pool.Close()
		fsClient.Close()
		return nil, err
	}

	// Verificar serviço de autenticação (falha cedo se JWT_SECRET_KEY faltar)
	if _, err := auth.NewJWTService(); err != nil {
		registry.Close()
		pool.Close()
		fsClient.Close()
		return nil, err
	}

	// Consultas em linguagem natural são opcionais: sem a chave do
	// Gemini a API sobe com o recurso desabilitado
	var queryHandler *nlquery.Handler
	queryHandlerEnabled := false
	if gem, err := gemini.NewClient(log); err != nil {
		log.Warn("Consultas em linguagem natural desabilitadas", "error", err)
	} else {
		queryHandler = nlquery.NewHandler(gem, source, auditRepo, log)
		queryHandlerEnabled = true
	}

	// Criar controllers
	authController := controller.NewAuthController(userRepo, log)
	userController := controller.NewUserController(userRepo, log)
	analyticsController := controller.NewAnalyticsController(service, log, queryHandlerEnabled)
	queryController := controller.NewQueryController(queryHandler, auditRepo, log)
	widgetController := controller.NewWidgetController(registry, log)
	exportController := controller.NewExportController(service, log)

	// Configurar router com modo correto
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupSetupRoutes(api, userController)
	route.SetupAuthRoutes(api, authController)
	route.SetupUserRoutes(api, userController)
	route.SetupAnalyticsRoutes(api, analyticsController)
	route.SetupQueryRoutes(api, queryController)
	route.SetupWidgetRoutes(api, widgetController)
	route.SetupExportRoutes(api, exportController)

	return &App{
		router:    router,
		logger:    log,
		pool:      pool,
		firestore: fsClient,
		registry:  registry,
	}, nil
}

// registerWidgets associa cada widget do dashboard à consulta de
// métricas que o alimenta
func registerWidgets(registry *scheduler.Registry, service *analytics.Service) {
	registry.Register(widget.WeeklyUsers, func(ctx context.Context) (interface{}, error) {
		return service.WeeklyActiveUsers(ctx)
	})
	registry.Register(widget.UserQueries, func(ctx context.Context) (interface{}, error) {
		return service.UserQueryStatistics(ctx)
	})
	registry.Register(widget.MedicineSearch, func(ctx context.Context) (interface{}, error) {
		return service.MedicineSearchStats(ctx)
	})
	registry.Register(widget.DailyEngagement, func(ctx context.Context) (interface{}, error) {
		return service.DailyEngagement(ctx)
	})
	registry.Register(widget.Demographics, func(ctx context.Context) (interface{}, error) {
		return service.UserDemographics(ctx)
	})
	registry.Register(widget.ChatSessions, func(ctx context.Context) (interface{}, error) {
		return service.ChatSessionAnalysis(ctx)
	})
	registry.Register(widget.PeakHours, func(ctx context.Context) (interface{}, error) {
		return service.PeakUsageHours(ctx)
	})
	registry.Register(widget.Retention, func(ctx context.Context) (interface{}, error) {
		return service.RetentionAnalysis(ctx)
	})
	registry.Register(widget.ResponseTimes, func(ctx context.Context) (interface{}, error) {
		return service.ResponseTimeAnalysis(ctx)
	})
	registry.Register(widget.ContentCategories, func(ctx context.Context) (interface{}, error) {
		return service.ContentCategoryAnalysis(ctx)
	})
	registry.Register(widget.AgeCategoryQueries, func(ctx context.Context) (interface{}, error) {
		return service.AgeCategoryQueries(ctx)
	})
}

// Start sobe o servidor HTTP e aguarda o sinal de encerramento
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Servidor iniciado", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Close()
		return err
	case sig := <-quit:
		a.logger.Info("Encerrando servidor", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		a.logger.Error("Erro ao encerrar servidor HTTP", "error", err)
	}

	a.Close()
	return nil
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.registry != nil {
		a.registry.Close()
	}
	if a.firestore != nil {
		_ = a.firestore.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
