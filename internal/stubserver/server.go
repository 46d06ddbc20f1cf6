// Package stubserver is a local stand-in for the remote shop backend: cart,
// orders, catalog, reviews, auth and a fake payment provider, persisted via
// GORM. It exists so the client SDK can run and be tested end to end without
// external infrastructure; it is not a production server.
package stubserver

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"boutique/internal/models"
	"boutique/pkg/rabbitmq"
)

// Config holds the stub backend settings.
type Config struct {
	DatabaseDriver string // "sqlite" (default) or "postgres"
	DatabaseDSN    string // sqlite path or postgres DSN; defaults to in-memory sqlite
	JWTSecret      string
	ClientKey      string           // when set, requests must carry it as X-Client-Key
	MQ             *rabbitmq.Client // optional; order events are published when present
}

// Server is the wired stub backend.
type Server struct {
	App *fiber.App
	DB  *gorm.DB

	cfg      Config
	validate *validator.Validate
}

// cartRow is the durable cart line. The nested view the client sees is
// assembled from the catalog at read time.
type cartRow struct {
	ID            int `gorm:"primaryKey;autoIncrement"`
	UserID        int `gorm:"index"`
	ProductSizeID int
	Quantity      int
}

// New opens the database, migrates the schema and mounts all routes.
func New(cfg Config) (*Server, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductColor{},
		&models.ProductSize{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.ReviewImage{},
		&models.Inquiry{},
		&models.InquiryImage{},
		&cartRow{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate schema: %w", err)
	}

	s := &Server{
		App:      fiber.New(),
		DB:       db,
		cfg:      cfg,
		validate: validator.New(),
	}
	s.App.Use(fiberlogger.New())
	s.registerRoutes()
	return s, nil
}

func openDatabase(cfg Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseDSN
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	case "", "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

func (s *Server) registerRoutes() {
	api := s.App.Group("/api")
	if s.cfg.ClientKey != "" {
		api.Use(s.clientKeyRequired)
	}

	// Public.
	api.Post("/auth/register", s.handleRegister)
	api.Post("/auth/login", s.handleLogin)
	api.Get("/products", s.handleListProducts)
	api.Get("/products/:id", s.handleGetProduct)
	api.Get("/products/:id/reviews", s.handleListProductReviews)
	api.Get("/categories", s.handleListCategories)
	api.Get("/categories/:id", s.handleGetCategory)

	// Authenticated.
	user := api.Group("", s.authRequired)
	user.Get("/cart", s.handleGetCart)
	user.Post("/cart", s.handleAddToCart)
	user.Put("/cart/:id", s.handleUpdateCartItem)
	user.Delete("/cart/:id", s.handleRemoveCartItem)
	user.Get("/orders", s.handleListOrders)
	user.Post("/orders", s.handleCreateOrder)
	user.Post("/orders/confirm", s.handleConfirmOrder)
	user.Get("/orders/:id", s.handleGetOrder)
	user.Post("/orders/:id/cancel", s.handleCancelOrder)
	user.Get("/reviews/me", s.handleListMyReviews)
	user.Post("/reviews", s.handleCreateReview)
	user.Put("/reviews/:id", s.handleUpdateReview)
	user.Delete("/reviews/:id", s.handleDeleteReview)
	user.Post("/inquiries", s.handleCreateInquiry)
	user.Get("/inquiries/me", s.handleListMyInquiries)
	user.Get("/inquiries/:id", s.handleGetInquiry)

	// Admin.
	admin := api.Group("/admin", s.authRequired, s.adminRequired)
	admin.Post("/categories", s.handleAdminCreateCategory)
	admin.Put("/categories/:id", s.handleAdminUpdateCategory)
	admin.Delete("/categories/:id", s.handleAdminDeleteCategory)
	admin.Post("/products", s.handleAdminCreateProduct)
	admin.Put("/products/:id", s.handleAdminUpdateProduct)
	admin.Delete("/products/:id", s.handleAdminDeleteProduct)
	admin.Get("/inquiries", s.handleAdminListInquiries)
	admin.Put("/inquiries/:id/answer", s.handleAdminAnswerInquiry)

	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
}

func (s *Server) clientKeyRequired(c *fiber.Ctx) error {
	if c.Get("X-Client-Key") != s.cfg.ClientKey {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Invalid client key",
		})
	}
	return c.Next()
}

// publishOrderEvent sends an order lifecycle event when a broker is
// configured; publish failures are logged, never fatal to the request.
func (s *Server) publishOrderEvent(event string, order *models.Order) {
	if s.cfg.MQ == nil {
		return
	}
	err := s.cfg.MQ.PublishOrderEvent(rabbitmq.OrderEvent{
		Event:       event,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", event, order.OrderNumber, err)
	}
}

// validationErrors flattens validator output into a field→message map for the
// error envelope.
func validationErrors(err error) map[string]string {
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			out[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return out
}
