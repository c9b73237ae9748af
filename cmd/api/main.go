package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/rachitgupta/fintrack-be/internal/core/auth"
	"github.com/rachitgupta/fintrack-be/internal/core/docintel"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/handlers"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/repositories"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/services"
	"github.com/rachitgupta/fintrack-be/internal/shared/config"
	"github.com/rachitgupta/fintrack-be/internal/shared/database"
	"github.com/rachitgupta/fintrack-be/internal/shared/utils"

	_ "github.com/rachitgupta/fintrack-be/cmd/api/docs"
)

// @title FinTrack API
// @version 1.0
// @description Personal finance tracker: transactions, receipt scanning, reports
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting fintrack-api on port %s", cfg.Port)

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET is empty")
	}

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories
	transactionRepo := repositories.NewTransactionRepo(db.GORM)

	// Init auth
	authService := auth.NewService(db.GORM, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)
	protect := auth.Middleware(authService)

	// Init receipt analysis provider. Providers construct fail-fast; the
	// API still boots without one, but receipt uploads answer 503.
	analyzerService := newAnalyzer(cfg)

	// Init services
	transactionService := services.NewTransactionService(transactionRepo)
	receiptService := services.NewReceiptService(analyzerService, transactionService, cfg.UploadDir)

	// Init handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	reportHandler := handlers.NewReportHandler(transactionService)
	healthHandler := handlers.NewHealthHandler(db)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "FinTrack API",
		BodyLimit: 10 * 1024 * 1024, // uploads over 5MB get a 400, not a cut connection
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Auth routes
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)
	app.Post("/api/auth/refresh", authHandler.Refresh)
	app.Get("/api/auth/me", protect, authHandler.Me)
	app.Post("/api/auth/logout", protect, authHandler.Logout)

	// Transaction routes
	app.Get("/api/transactions", protect, transactionHandler.GetTransactions)
	app.Post("/api/transactions", protect, transactionHandler.CreateTransaction)
	app.Put("/api/transactions/:id", protect, transactionHandler.UpdateTransaction)
	app.Delete("/api/transactions/:id", protect, transactionHandler.DeleteTransaction)

	// Receipt routes
	app.Post("/api/receipts/upload", protect, receiptHandler.UploadReceipt)
	app.Post("/api/receipts/create-transaction", protect, receiptHandler.CreateTransactionFromReceipt)

	// Report routes
	app.Get("/api/reports/summary", protect, reportHandler.GetSummary)
	app.Get("/api/reports/categories", protect, reportHandler.GetCategoryBreakdown)
	app.Get("/api/reports/monthly", protect, reportHandler.GetMonthlySeries)
	app.Get("/api/reports/daily", protect, reportHandler.GetDailySeries)
	app.Get("/api/reports/export", protect, reportHandler.ExportCSV)

	log.Printf("✅ fintrack-api running at :%s", cfg.Port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// newAnalyzer builds the configured document-analysis service, or nil when
// no provider credentials are present.
func newAnalyzer(cfg *config.Config) *docintel.Service {
	var (
		provider docintel.Provider
		err      error
	)

	switch cfg.ReceiptProvider {
	case "openai":
		provider, err = docintel.NewOpenAIProvider(cfg.OpenAIKey)
	default:
		provider, err = docintel.NewAzureProvider(cfg.AzureDocEndpoint, cfg.AzureDocKey)
	}
	if err != nil {
		log.Printf("⚠️  Receipt analysis not configured: %v", err)
		return nil
	}

	service := docintel.NewService(provider)
	log.Printf("🔍 Using receipt analysis provider: %s", service.GetProviderName())
	return service
}
