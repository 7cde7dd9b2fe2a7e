package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"internhub/internal/auth"
	"internhub/internal/cache"
	"internhub/internal/config"
	"internhub/internal/db"
	"internhub/internal/handler"
	"internhub/internal/model"
	"internhub/internal/notify"
	"internhub/internal/repository"
	"internhub/internal/router"
	"internhub/internal/service"
)

// @title InternHub API
// @version 1.0
// @description Internship lifecycle API: applications, intern accounts, periodic reports, and supervisor evaluations with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Notification{},
			&model.Evaluation{},
			&model.InternReport{},
			&model.ReportTemplate{},
			&model.InternshipApplication{},
			&model.SkillRequirement{},
			&model.Skill{},
			&model.Internship{},
			&model.Profile{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Internship{},
		&model.Skill{},
		&model.SkillRequirement{},
		&model.InternshipApplication{},
		&model.InternReport{},
		&model.ReportTemplate{},
		&model.Evaluation{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	internshipRepo := repository.NewInternshipRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)
	skillRepo := repository.NewSkillRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	templateRepo := repository.NewReportTemplateRepository(gormDB)
	evaluationRepo := repository.NewEvaluationRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Notification events are persisted asynchronously
	notifier := notify.NewNotifier(notificationRepo, cfg.NotificationBuffer)
	defer notifier.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient, notifier)
	internshipService := service.NewInternshipService(internshipRepo, applicationRepo, skillRepo, cacheClient)
	applicationService := service.NewApplicationService(applicationRepo, internshipRepo, notifier, cfg.DefaultInternPass)
	reportService := service.NewReportService(reportRepo, internshipRepo, userRepo, notifier)
	evaluationService := service.NewEvaluationService(evaluationRepo, internshipRepo, userRepo, notifier)
	templateService := service.NewReportTemplateService(templateRepo)
	dashboardService := service.NewDashboardService(userRepo, internshipRepo, applicationRepo, reportRepo, evaluationRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	internshipHandler := handler.NewInternshipHandler(internshipService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	reportHandler := handler.NewReportHandler(reportService)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	templateHandler := handler.NewTemplateHandler(templateService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		internshipHandler,
		applicationHandler,
		reportHandler,
		evaluationHandler,
		dashboardHandler,
		templateHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
