package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la empresa.
// CreditBalance es la deuda pendiente: suma de ventas a crédito menos abonos recibidos.
// Se muta únicamente con operaciones aritméticas atómicas en el almacén
// (nunca leer-calcular-escribir desde el caller).
type Customer struct {
	ID            string
	CompanyID     string
	Name          string
	TaxID         string // NIT o cédula
	Email         string
	Phone         string
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
