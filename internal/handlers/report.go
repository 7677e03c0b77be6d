package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lenstock/internal/config"
	"github.com/example/lenstock/internal/models"
	"github.com/example/lenstock/internal/report"
)

// ReportHandler serves inventory summaries and spreadsheet exports.
type ReportHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{db: db, cfg: cfg}
}

// Summary aggregates the whole inventory into dashboard totals.
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	lenses, err := h.allLenses()
	if err != nil {
		return err
	}

	return c.JSON(report.Summarize(lenses, h.cfg.LowStockThreshold))
}

// Export writes the inventory to a timestamped spreadsheet and returns the
// file name and storage path.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	lenses, err := h.allLenses()
	if err != nil {
		return err
	}

	name, path, err := report.WriteExport(h.cfg.ExportDir, lenses, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"mensagem": "Relatório exportado com sucesso",
		"arquivo":  name,
		"caminho":  path,
	})
}

func (h *ReportHandler) allLenses() ([]models.Lens, error) {
	lenses := []models.Lens{}
	if err := h.db.Order("created_at").Find(&lenses).Error; err != nil {
		return nil, err
	}
	return lenses, nil
}
