package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"imobi/internal/handlers"
	"imobi/internal/middleware"
	"imobi/internal/models"
	"imobi/internal/repositories"
	"imobi/internal/services"
	"imobi/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "imobi.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SUPERUSER_EMAIL", "")
	viper.SetDefault("SUPERUSER_PASSWORD", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.RealEstate{},
		&models.Property{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, property events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMTokenRepository(db)
	realEstateRepo := repositories.NewGORMRealEstateRepository(db)
	propertyRepo := repositories.NewGORMPropertyRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, tokenRepo)
	realEstateService := services.NewRealEstateService(realEstateRepo)
	propertyService := services.NewPropertyService(propertyRepo, realEstateRepo, mqClient)

	// --- Superuser bootstrap ---
	// Creates an administrative account on first start when configured.
	// A duplicate email on later starts is reported and ignored.
	if email := viper.GetString("SUPERUSER_EMAIL"); email != "" {
		if _, err := authService.CreateSuperuser(email, viper.GetString("SUPERUSER_PASSWORD")); err != nil {
			log.Printf("Superuser bootstrap skipped: %v", err)
		} else {
			log.Printf("Superuser %s created", email)
		}
	}

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(authService)
	realEstateHandler := handlers.NewRealEstateHandler(realEstateService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(authService)

	// /user/create and /user/token are public, /user/me is protected.
	userHandler.RegisterRoutes(app, authRequired)

	// Every property resource requires authentication.
	propertyGroup := app.Group("/property", authRequired)
	realEstateHandler.RegisterRoutes(propertyGroup)
	propertyHandler.RegisterRoutes(propertyGroup)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Property event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for property events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received property event (tag: %d, type: %s): %s",
					msg.DeliveryTag, msg.Type, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumePropertyEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens PostgreSQL when DATABASE_URL is configured and falls
// back to a local SQLite file otherwise.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}
