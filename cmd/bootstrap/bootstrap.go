package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelink/config"
	deliveryHttp "carelink/internal/delivery/http"
	"carelink/internal/delivery/http/handler"
	"carelink/internal/delivery/http/middleware"
	"carelink/internal/infrastructure/ai"
	"carelink/internal/infrastructure/cache"
	"carelink/internal/infrastructure/database"
	"carelink/internal/infrastructure/storage"
	"carelink/internal/repository"
	"carelink/internal/service"
	"carelink/internal/usecase"
	"carelink/pkg/jwt"
	"carelink/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsPath = "db/migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	LLM         ai.LLMProvider
	Generator   *service.MetricGenerator
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB, migrationsPath); err != nil {
		return nil, err
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize the assistant model client
	llm, err := ai.NewGeminiLLM(context.Background(), cfg.Assistant.APIKey, cfg.Assistant.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assistant client: %w", err)
	}
	app.LLM = llm

	// Initialize all layers
	server, generator, err := initializeServer(cfg, db, redisClient, llm)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.Generator = generator

	// Start the synthetic metric scheduler
	if cfg.Generator.Enabled {
		if err := generator.Start(cfg.Generator.Schedule); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, llm ai.LLMProvider) (*http.Server, *service.MetricGenerator, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize file storage
	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	careRequestRepo := repository.NewCareRequestRepository()
	careAssignmentRepo := repository.NewCareAssignmentRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	metricRepo := repository.NewHealthMetricRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	fileRepo := repository.NewHealthDataFileRepository()
	chatRepo := repository.NewChatMessageRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditRepo)
	importService := service.NewHealthImportService(log)
	generator := service.NewMetricGenerator(db, log, patientProfileRepo, metricRepo)
	assistant := service.NewAssistantService(db, log, llm, patientProfileRepo, metricRepo, recordRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, doctorProfileRepo, careRequestRepo, careAssignmentRepo, appointmentRepo, metricRepo, recordRepo, fileRepo, chatRepo, jwtService, redisClient, store, generator, auditService)
	careUsecase := usecase.NewCareUsecase(db, log, patientProfileRepo, doctorProfileRepo, careRequestRepo, careAssignmentRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, careAssignmentRepo, auditService)
	healthMetricUsecase := usecase.NewHealthMetricUsecase(db, log, metricRepo, fileRepo, store, importService, auditService)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, recordRepo, careAssignmentRepo, store, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorProfileRepo, patientProfileRepo, careAssignmentRepo, appointmentRepo, metricRepo, recordRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientProfileRepo, doctorProfileRepo, careAssignmentRepo, metricRepo, recordRepo)
	chatUsecase := usecase.NewChatUsecase(db, log, chatRepo, careAssignmentRepo, assistant)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	careHandler := handler.NewCareHandler(careUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	healthHandler := handler.NewHealthHandler(healthMetricUsecase, customValidator)
	recordHandler := handler.NewRecordHandler(medicalRecordUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	patientHandler := handler.NewPatientHandler(patientUsecase)
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, careHandler, appointmentHandler, healthHandler, recordHandler, doctorHandler, patientHandler, chatHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, generator, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop the metric scheduler
	if app.Generator != nil {
		app.Generator.Stop()
	}

	// Close the assistant client
	if app.LLM != nil {
		app.LLM.Close()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
