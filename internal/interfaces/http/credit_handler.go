package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/credit"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// CreditHandler maneja los abonos a la deuda de clientes (protegido).
type CreditHandler struct {
	uc *credit.CreditUseCase
}

// NewCreditHandler construye el handler.
func NewCreditHandler(uc *credit.CreditUseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// RecordPayment registra un abono y descuenta la deuda en la misma transacción.
// POST /api/customers/:id/payments
func (h *CreditHandler) RecordPayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.RecordPayment(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ListPayments lista los abonos recibidos de un cliente.
// GET /api/customers/:id/payments
func (h *CreditHandler) ListPayments(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListPayments(c.Context(), companyID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}
