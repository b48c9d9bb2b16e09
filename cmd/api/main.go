package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/scaleworks/ddt-api/internal/application/service"
	"github.com/scaleworks/ddt-api/internal/config"
	"github.com/scaleworks/ddt-api/internal/infrastructure/database"
	"github.com/scaleworks/ddt-api/internal/infrastructure/repository"
	"github.com/scaleworks/ddt-api/internal/presentation/http/handler"
	"github.com/scaleworks/ddt-api/internal/presentation/http/routes"
	"github.com/scaleworks/ddt-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	ticketRepo := repository.NewTicketRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	ticketService := service.NewTicketService(ticketRepo)
	clientService := service.NewClientService(clientRepo)
	lineSource := service.NewLineSourceService(ticketRepo, articleRepo)
	documentService := service.NewDocumentService(
		txManager,
		documentRepo,
		ticketRepo,
		clientRepo,
		companyRepo,
		taskRepo,
		sequenceRepo,
		lineSource,
	)
	exportService := service.NewExportService()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Ticket:   handler.NewTicketHandler(ticketService, cfg.Company.DefaultID),
		Document: handler.NewDocumentHandler(documentService, exportService, cfg.Company.DefaultID),
		Client:   handler.NewClientHandler(clientService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
