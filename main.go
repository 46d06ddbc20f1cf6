package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"boutique/internal/stubserver"
	"boutique/pkg/rabbitmq"
)

// Runs the local development backend: a stand-in for the remote shop API the
// storefront client talks to. Catalog, cart, orders, payment confirmation and
// auth are all served from one process.
func main() {
	// --- Configuration ---
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	viper.SetDefault("APP_PORT", ":4001")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "boutique.db")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.SetDefault("CLIENT_KEY", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- RabbitMQ (optional) ---
	// Order events are published only when a broker URL is configured; the
	// backend runs fine without one.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Server ---
	srv, err := stubserver.New(stubserver.Config{
		DatabaseDriver: viper.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    viper.GetString("DATABASE_DSN"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		ClientKey:      viper.GetString("CLIENT_KEY"),
		MQ:             mqClient,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := stubserver.Seed(srv.DB); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// --- Order event consumer ---
	if mqClient != nil {
		log.Println("Starting order event consumer...")
		err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start order event consumer: %v", err)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting shop backend on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.App.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := srv.App.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
