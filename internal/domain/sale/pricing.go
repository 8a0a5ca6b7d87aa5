// Package sale contiene la lógica de precios de la venta (servicio de dominio puro).
package sale

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// Line es una línea del carrito para el cálculo de totales.
type Line struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// ComputeTotals calcula subtotal y total de la venta. Función pura: sin I/O ni efectos.
//
//	subtotal = Σ (cantidad × precio unitario)
//	total    = subtotal − descuento
//
// Política de redondeo: half-up a 2 decimales aplicado una sola vez sobre el total
// (y sobre el subtotal reportado), nunca línea por línea, para evitar deriva acumulada.
// Rechaza con ErrInvalidInput: carrito vacío, cantidad no positiva, precio negativo,
// descuento negativo o descuento mayor al subtotal (un total negativo nunca es válido).
func ComputeTotals(lines []Line, discount decimal.Decimal) (subtotal, total decimal.Decimal, err error) {
	if len(lines) == 0 {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	if discount.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	if discount.GreaterThan(subtotal) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	subtotal = subtotal.Round(2)
	total = subtotal.Sub(discount).Round(2)
	return subtotal, total, nil
}

// LineTotal calcula el total de una línea sin redondear (el redondeo va solo al total).
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
