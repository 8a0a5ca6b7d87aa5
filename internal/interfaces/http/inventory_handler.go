package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos manuales de stock y consultas (protegido).
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement registra una entrada, salida, ajuste o devolución.
// El cambio de cantidad y su registro de auditoría se confirman juntos.
// POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.RegisterMovement(c.Context(), companyID, userID, in); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// GetStock consulta el stock de un producto en una bodega.
// GET /api/inventory/stock?product_id=...&warehouse_id=...
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id requeridos"})
	}
	stock, err := h.uc.GetStock(c.Context(), companyID, productID, warehouseID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(stock)
}
