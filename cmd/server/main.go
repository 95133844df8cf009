package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/gigflow/api/internal/auth"
	"github.com/gigflow/api/internal/config"
	"github.com/gigflow/api/internal/handler"
	"github.com/gigflow/api/internal/middleware"
	"github.com/gigflow/api/internal/service"
	"github.com/gigflow/api/internal/store"
	ws "github.com/gigflow/api/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open database and migrate schema
	db, err := store.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Initialize Redis client (rate limiting only; the limiter fails
	// open when Redis is down)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize stores
	userStore := store.NewUserStore(db)
	gigStore := store.NewGigStore(db)
	bidStore := store.NewBidStore(db)

	// Initialize services
	authService := service.NewAuthService(userStore, cfg.JWT.Secret, cfg.JWT.Expiration)
	gigService := service.NewGigService(gigStore)
	bidService := service.NewBidService(bidStore, gigStore, hub)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	gigHandler := handler.NewGigHandler(gigService, validate)
	bidHandler := handler.NewBidHandler(bidService, validate)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public, brute-force limited)
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", rateLimiter.AuthLimit(cfg.RateLimit.AuthPer15Min), authHandler.Register)
	authGroup.Post("/login", rateLimiter.AuthLimit(cfg.RateLimit.AuthPer15Min), authHandler.Login)
	authGroup.Post("/logout", authMiddleware.Authenticate(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Authenticate(), authHandler.Me)

	// Gig routes
	gigs := app.Group("/api/gigs")
	gigs.Get("/", rateLimiter.APILimit(cfg.RateLimit.APIPerMin), gigHandler.List)
	gigs.Get("/my-gigs", authMiddleware.Authenticate(), gigHandler.MyGigs)
	gigs.Post("/", authMiddleware.Authenticate(), gigHandler.Create)
	gigs.Get("/:id", rateLimiter.APILimit(cfg.RateLimit.APIPerMin), gigHandler.Get)

	// Bid routes (all authenticated)
	bids := app.Group("/api/bids", authMiddleware.Authenticate())
	bids.Get("/my-bids", bidHandler.MyBids)
	bids.Post("/", rateLimiter.BidLimit(cfg.RateLimit.BidsPerMin), bidHandler.Create)
	bids.Patch("/:bidId/hire", bidHandler.Hire)
	bids.Patch("/:bidId/reject", bidHandler.Reject)
	bids.Get("/:gigId", bidHandler.ListForGig)

	// WebSocket notifications. The token travels as a query parameter
	// since browsers cannot set headers on websocket upgrades.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := auth.ParseToken(cfg.JWT.Secret, c.Query("token"))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("userId", claims.UserID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("userId").(string)
		hub.HandleConnection(c, userID)
	}))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
