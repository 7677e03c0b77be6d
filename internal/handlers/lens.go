package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lenstock/internal/models"
	"github.com/example/lenstock/internal/utils"
)

// Stock adjustment kinds accepted by AdjustStock.
const (
	AdjustIncrease = "entrada"
	AdjustDecrease = "saida"
)

// LensHandler manages lens CRUD and stock adjustments.
type LensHandler struct {
	db *gorm.DB
}

// NewLensHandler constructs a LensHandler.
func NewLensHandler(db *gorm.DB) *LensHandler {
	return &LensHandler{db: db}
}

// ListLenses returns lenses matching the optional filters. Each filter is a
// case-sensitive substring match and they combine with AND.
func (h *LensHandler) ListLenses(c *fiber.Ctx) error {
	query := h.db.Model(&models.Lens{})

	if name := c.Query("nome"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if brand := c.Query("marca"); brand != "" {
		query = query.Where("brand LIKE ?", "%"+brand+"%")
	}
	if power := c.Query("grau"); power != "" {
		query = query.Where("spherical_power LIKE ?", "%"+power+"%")
	}

	if limit := utils.ParseLimit(c); limit > 0 {
		query = query.Limit(limit)
	}

	lenses := []models.Lens{}
	if err := query.Order("created_at").Find(&lenses).Error; err != nil {
		return err
	}

	return c.JSON(lenses)
}

// GetLens fetches a single lens by ID.
func (h *LensHandler) GetLens(c *fiber.Ctx) error {
	lens, err := h.findLens(c)
	if err != nil {
		return err
	}

	return c.JSON(lens)
}

type createLensRequest struct {
	Name             string   `json:"nome"`
	Brand            string   `json:"marca"`
	SphericalPower   string   `json:"grau_esferico"`
	CylindricalPower string   `json:"grau_cilindrico"`
	Axis             string   `json:"eixo"`
	Quantity         *int     `json:"quantidade"`
	Price            *float64 `json:"preco"`
	Description      string   `json:"descricao"`
}

// CreateLens registers a new lens. Quantity and price must be supplied by
// the caller; an absent field is rejected rather than defaulted to zero.
func (h *LensHandler) CreateLens(c *fiber.Ctx) error {
	var req createLensRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dados incompletos")
	}

	if req.Name == "" || req.Brand == "" || req.SphericalPower == "" ||
		req.Quantity == nil || req.Price == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dados incompletos")
	}

	lens := models.Lens{
		Name:             req.Name,
		Brand:            req.Brand,
		SphericalPower:   req.SphericalPower,
		CylindricalPower: req.CylindricalPower,
		Axis:             req.Axis,
		Quantity:         *req.Quantity,
		Price:            *req.Price,
		Description:      req.Description,
	}

	if err := h.db.Create(&lens).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(lens)
}

type updateLensRequest struct {
	Name             *string  `json:"nome"`
	Brand            *string  `json:"marca"`
	SphericalPower   *string  `json:"grau_esferico"`
	CylindricalPower *string  `json:"grau_cilindrico"`
	Axis             *string  `json:"eixo"`
	Quantity         *int     `json:"quantidade"`
	Price            *float64 `json:"preco"`
	Description      *string  `json:"descricao"`
}

// UpdateLens applies a partial update: only fields present in the request
// body change, everything else keeps its prior value.
func (h *LensHandler) UpdateLens(c *fiber.Ctx) error {
	lens, err := h.findLens(c)
	if err != nil {
		return err
	}

	var req updateLensRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dados não fornecidos")
	}

	if req.Name != nil {
		lens.Name = *req.Name
	}
	if req.Brand != nil {
		lens.Brand = *req.Brand
	}
	if req.SphericalPower != nil {
		lens.SphericalPower = *req.SphericalPower
	}
	if req.CylindricalPower != nil {
		lens.CylindricalPower = *req.CylindricalPower
	}
	if req.Axis != nil {
		lens.Axis = *req.Axis
	}
	if req.Quantity != nil {
		lens.Quantity = *req.Quantity
	}
	if req.Price != nil {
		lens.Price = *req.Price
	}
	if req.Description != nil {
		lens.Description = *req.Description
	}

	if err := h.db.Save(&lens).Error; err != nil {
		return err
	}

	return c.JSON(lens)
}

// DeleteLens removes a lens permanently.
func (h *LensHandler) DeleteLens(c *fiber.Ctx) error {
	lens, err := h.findLens(c)
	if err != nil {
		return err
	}

	if err := h.db.Delete(&lens).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"mensagem": "Lente excluída com sucesso",
	})
}

type adjustStockRequest struct {
	Kind   *string `json:"tipo"`
	Amount *int    `json:"quantidade"`
}

// AdjustStock applies a stock movement to a lens. Decreases run as a single
// conditional UPDATE so two concurrent movements can never drive the
// quantity below zero; draining the stock to exactly zero is allowed.
func (h *LensHandler) AdjustStock(c *fiber.Ctx) error {
	lens, err := h.findLens(c)
	if err != nil {
		return err
	}

	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tipo e quantidade são obrigatórios")
	}

	if req.Kind == nil || req.Amount == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tipo e quantidade são obrigatórios")
	}

	amount := *req.Amount
	if amount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Quantidade deve ser um número não negativo")
	}

	switch *req.Kind {
	case AdjustIncrease:
		err = h.db.Model(&lens).
			Update("quantity", gorm.Expr("quantity + ?", amount)).Error
		if err != nil {
			return err
		}

	case AdjustDecrease:
		res := h.db.Model(&lens).
			Where("quantity >= ?", amount).
			Update("quantity", gorm.Expr("quantity - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantidade insuficiente em estoque")
		}

	default:
		return fiber.NewError(fiber.StatusBadRequest, `Tipo deve ser "entrada" ou "saida"`)
	}

	if err := h.db.First(&lens, "id = ?", lens.ID).Error; err != nil {
		return err
	}

	return c.JSON(lens)
}

func (h *LensHandler) findLens(c *fiber.Ctx) (models.Lens, error) {
	var lens models.Lens

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return lens, fiber.NewError(fiber.StatusNotFound, "Lente não encontrada")
	}

	if err := h.db.First(&lens, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lens, fiber.NewError(fiber.StatusNotFound, "Lente não encontrada")
		}
		return lens, err
	}

	return lens, nil
}
