package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en una venta.
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentCredit       = "credit" // fiado: incrementa CreditBalance del cliente
	PaymentBankTransfer = "bank_transfer"
)

// ValidPaymentMethod indica si el método es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentCredit, PaymentBankTransfer:
		return true
	}
	return false
}

// Sale es la cabecera de una venta POS completada. Inmutable después de creada;
// las correcciones van por un flujo de devolución aparte.
// Invariante: Total = suma de LineTotal de sus items menos Discount.
type Sale struct {
	ID             string
	CompanyID      string
	UserID         string // cajero
	WarehouseID    string
	CustomerID     string // vacío para venta de mostrador; obligatorio si PaymentMethod = credit
	PaymentMethod  string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	IdempotencyKey string // opcional; única por empresa para reintentos seguros
	Date           time.Time
	CreatedAt      time.Time
}

// SaleItem es una línea de la venta. Se crea junto con la cabecera, en la misma transacción.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
