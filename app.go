package main

import (
	"errors"
	"fmt"
	"time"

	"etalase/internal/handlers"
	"etalase/internal/middleware"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"
	"etalase/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber *fiber.App
	DB    *gorm.DB
	MQ    *rabbitmq.Client

	productRepo repositories.ProductRepository
	lg          *zap.Logger
}

func openDatabase(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// NewApp connects the database (and RabbitMQ when configured) and wires
// repositories, services and handlers into a Fiber app.
func NewApp(cfg Config, lg *zap.Logger) (*App, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{DB: db, lg: lg}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		a.MQ, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, lg)
		if err != nil {
			return nil, err
		}
		publisher = a.MQ
	} else {
		lg.Info("RABBITMQ_URL not set, cart events are disabled")
	}

	// --- Repositories ---
	a.productRepo = repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	productService := services.NewProductService(a.productRepo)
	cartService := services.NewCartService(cartRepo, a.productRepo, publisher, lg.Named("cart"))
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, lg.Named("auth"))

	// --- Handlers ---
	storefront := handlers.NewStorefrontHandler(productService, cartService, lg.Named("storefront"))
	productHandler := handlers.NewProductHandler(productService, lg.Named("api"))
	cartHandler := handlers.NewCartHandler(cartService, lg.Named("api"))
	authHandler := handlers.NewAuthHandler(authService, lg.Named("api"))

	app := fiber.New(fiber.Config{
		AppName:               "etalase",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", a.handleHealth)

	storefront.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)

	a.Fiber = app
	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	dbStatus := "connected"
	if sqlDB, err := a.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}
	mqStatus := "disabled"
	if a.MQ != nil {
		mqStatus = "connected"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": dbStatus,
		"rabbitmq": mqStatus,
	})
}

// SeedProducts fills an empty catalog with demo products.
func (a *App) SeedProducts() error {
	existing, err := a.productRepo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Image: "/img/laptop.png", Price: decimal.RequireFromString("1200.00"), Stock: 10},
		{Name: "Keyboard", Description: "Mechanical keyboard", Image: "/img/keyboard.png", Price: decimal.RequireFromString("75.00"), Stock: 25},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Image: "/img/mouse.png", Price: decimal.RequireFromString("25.00"), Stock: 50},
	}
	for i := range products {
		if err := a.productRepo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
		a.lg.Info("Seeded product", zap.String("name", products[i].Name), zap.String("id", products[i].ID))
	}
	return nil
}

// Close releases the database and broker connections.
func (a *App) Close() error {
	var errs []error
	if a.MQ != nil {
		if err := a.MQ.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
