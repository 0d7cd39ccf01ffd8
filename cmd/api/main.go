package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harshith-dev/coursehub-api/internal/config"
	"github.com/harshith-dev/coursehub-api/internal/database"
	"github.com/harshith-dev/coursehub-api/internal/handler"
	"github.com/harshith-dev/coursehub-api/internal/middleware"
	"github.com/harshith-dev/coursehub-api/internal/models"
	"github.com/harshith-dev/coursehub-api/internal/repository"
	"github.com/harshith-dev/coursehub-api/internal/router"
	"github.com/harshith-dev/coursehub-api/internal/service"
	cloud "github.com/harshith-dev/coursehub-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.Assignment{},
		&models.Enrollment{},
		&models.AuditLog{},
		&models.SupportMessage{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not set, catalog caching disabled")
	}

	var eventBus *nats.Conn
	if cfg.NATSURL != "" {
		eventBus, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer eventBus.Close()
	} else {
		logger.Warn().Msg("nats url not set, audit event fan-out disabled")
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewCourseModuleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	supportRepo := repository.NewSupportMessageRepository(db)

	auditService := service.NewAuditService(auditRepo, eventBus, logger)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	uploadService := service.NewUploadService(uploader, logger)
	userService := service.NewUserService(userRepo, courseRepo, enrollmentRepo, tokenService, auditService, validate, logger)
	courseService := service.NewCourseService(courseRepo, moduleRepo, assignmentRepo, enrollmentRepo, userRepo, uploadService, auditService, validate, redisClient, cfg.CatalogCacheTTL, logger)
	supportService := service.NewSupportService(supportRepo, auditService, validate, logger)

	if cfg.AdminPassword != "" {
		if err := userService.SeedAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to seed admin account: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    handler.NewAuthHandler(userService, logger),
		UserHandler:    handler.NewUserHandler(userService, logger),
		CourseHandler:  handler.NewCourseHandler(courseService, logger),
		AuditHandler:   handler.NewAuditHandler(auditService, logger),
		SupportHandler: handler.NewSupportHandler(supportService, logger),
		Authenticated:  middleware.Authenticated(tokenService),
		LoadActor:      middleware.LoadActor(userRepo),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
