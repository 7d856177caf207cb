package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"travelpay_echo/internal/config"
	"travelpay_echo/internal/handlers"
	appMiddleware "travelpay_echo/internal/middleware"
	"travelpay_echo/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Correlation store for booking drafts
	cache, err := services.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()

	// Optional callback audit log
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, callback history disabled")
	}

	// Upstream clients
	hostaway := services.NewHostawayService(cfg.HostawayBaseURL, cfg.HostawayBearerToken)
	superpay := services.NewSuperpayService(cfg.SuperpayBaseURL, cfg.SuperpayMerchantCode, cfg.SuperpayAPIKey, cfg.SuperpaySecretKey)

	bookingService := services.NewBookingService(
		services.NewRedisDraftStore(cache),
		hostaway,
		superpay,
		db,
		services.BookingServiceConfig{
			Currency:      cfg.Currency,
			SiteBaseURL:   cfg.SiteBaseURL,
			PublicBaseURL: cfg.PublicBaseURL,
		},
	)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = appMiddleware.JSONErrorHandler

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)

	e.GET("/health", bookingHandler.Health)
	e.POST("/api/create-booking", bookingHandler.CreateBooking)
	e.POST("/api/superpay-webhook", bookingHandler.SuperpayWebhook)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
