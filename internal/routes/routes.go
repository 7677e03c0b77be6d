package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lenstock/internal/config"
	"github.com/example/lenstock/internal/handlers"
	"github.com/example/lenstock/internal/middleware"
)

// ErrorHandler renders every error as the API's JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{"erro": err.Error()})
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	lensHandler := handlers.NewLensHandler(db)
	reportHandler := handlers.NewReportHandler(db, cfg)

	api := app.Group("/api")

	// Open routes
	api.Post("/registro", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Everything else requires an active session
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/usuario-atual", authHandler.CurrentUser)

	lenses := protected.Group("/lentes")
	lenses.Get("/", lensHandler.ListLenses)
	lenses.Post("/", lensHandler.CreateLens)
	lenses.Get("/:id", lensHandler.GetLens)
	lenses.Put("/:id", lensHandler.UpdateLens)
	lenses.Delete("/:id", lensHandler.DeleteLens)
	lenses.Post("/:id/ajustar-estoque", lensHandler.AdjustStock)

	reports := protected.Group("/relatorios")
	reports.Get("/resumo", reportHandler.Summary)
	reports.Get("/exportar", reportHandler.Export)
}
