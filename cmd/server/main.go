package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/lenstock/internal/config"
	"github.com/example/lenstock/internal/database"
	"github.com/example/lenstock/internal/routes"
	"github.com/example/lenstock/internal/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.Seed(db, utils.HashPassword); err != nil {
		log.Fatalf("database seed failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Lenstock Backend",
		ErrorHandler: routes.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
