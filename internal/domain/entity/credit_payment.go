package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditPayment es un abono recibido contra la deuda de un cliente.
// Append-only; siempre se crea junto con el decremento de CreditBalance,
// en la misma transacción.
type CreditPayment struct {
	ID         string
	CompanyID  string
	CustomerID string
	Amount     decimal.Decimal
	Method     string // cash, card, bank_transfer
	Notes      string
	ReceivedBy string // UserID del actor que recibe el abono
	CreatedAt  time.Time
}
