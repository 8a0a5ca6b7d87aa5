package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/checkout"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// SaleHandler maneja el checkout de ventas POS (protegido).
type SaleHandler struct {
	checkoutUC  *checkout.CheckoutUseCase
	receiptUC   *checkout.ReceiptUseCase
	warehouseUC *usecase.WarehouseUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(checkoutUC *checkout.CheckoutUseCase, receiptUC *checkout.ReceiptUseCase, warehouseUC *usecase.WarehouseUseCase) *SaleHandler {
	return &SaleHandler{checkoutUC: checkoutUC, receiptUC: receiptUC, warehouseUC: warehouseUC}
}

// Checkout completa una venta: descuenta stock, persiste la venta con sus líneas,
// registra movimientos de auditoría y actualiza la deuda si es a crédito — todo o nada.
// Si el body no trae bodega se usa la primera bodega configurada de la empresa.
// POST /api/sales
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.WarehouseID == "" {
		warehouses, err := h.warehouseUC.List(companyID)
		if err != nil {
			return errorResponse(c, err)
		}
		if len(warehouses) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la empresa no tiene bodegas configuradas"})
		}
		in.WarehouseID = warehouses[0].ID
	}
	sale, err := h.checkoutUC.Checkout(c.Context(), companyID, userID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID obtiene una venta con sus líneas.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	sale, err := h.checkoutUC.GetSale(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(sale)
}

// List lista las ventas de la empresa del token, recientes primero.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.checkoutUC.ListSales(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}

// Receipt genera el recibo PDF de una venta confirmada.
// GET /api/sales/:id/receipt
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
