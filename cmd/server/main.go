// Package main is the entry point for the API server. It initializes the
// backing stores, wires the routes and starts the HTTP listener.
package main

import (
	"log"
	"time"

	"roost/internal/config"
	"roost/internal/repositories"
	"roost/internal/routes"
	"roost/internal/seed"
	"roost/internal/services/notification"
	"roost/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	deps := routes.Deps{
		Notifier: notification.NewService(),
		Gateway:  payment.NewStripeGateway(),
	}

	// STORE=memory runs the demo dataset entirely in process; the default is
	// postgres + redis.
	if config.GetEnv("STORE", "postgres") == "memory" {
		store := repositories.NewMemoryStore()
		if err := seed.Demo(store); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		deps.Store = store
		deps.Notifier = notification.NewLogService()
		deps.Gateway = payment.NewNoopGateway()
		log.Println("running with in-memory demo store")
	} else {
		if err := repositories.InitDB(); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		deps.Store = repositories.NewGormStore(repositories.DB)
		deps.Cache = repositories.CacheService

		defer func() {
			if repositories.DB != nil {
				if sqlDB, err := repositories.DB.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}
			if repositories.CacheService != nil {
				_ = repositories.CacheService.Close()
			}
		}()
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/login", "/api/register"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, deps)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
