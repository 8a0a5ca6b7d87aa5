package dto

import "github.com/shopspring/decimal"

// RecordPaymentRequest body para POST /api/customers/:id/payments (abono a deuda).
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // cash, card, bank_transfer
	Notes  string          `json:"notes,omitempty"`
}

// CreditPaymentResponse abono en respuestas.
type CreditPaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Notes      string          `json:"notes,omitempty"`
	ReceivedBy string          `json:"received_by"`
	CreatedAt  string          `json:"created_at"`
}
