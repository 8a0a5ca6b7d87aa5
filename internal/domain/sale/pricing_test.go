package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/sale"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Vector de referencia: [{2 × 10.00}, {1 × 5.50}] con descuento 3.00
// debe dar subtotal 25.50 y total 22.50.
func TestComputeTotals_VectorBasico(t *testing.T) {
	lines := []sale.Line{
		{Quantity: 2, UnitPrice: dec("10.00")},
		{Quantity: 1, UnitPrice: dec("5.50")},
	}
	subtotal, total, err := sale.ComputeTotals(lines, dec("3.00"))
	require.NoError(t, err)
	assert.True(t, dec("25.50").Equal(subtotal), "subtotal esperado 25.50, fue %s", subtotal)
	assert.True(t, dec("22.50").Equal(total), "total esperado 22.50, fue %s", total)
}

// El redondeo half-up se aplica una sola vez sobre el total, no por línea:
// 3 × 3.335 = 10.005 → 10.01 (por línea daría 3.34 × 3 = 10.02).
func TestComputeTotals_RedondeoSoloAlTotal(t *testing.T) {
	lines := []sale.Line{
		{Quantity: 3, UnitPrice: dec("3.335")},
	}
	subtotal, total, err := sale.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, dec("10.01").Equal(subtotal), "subtotal fue %s", subtotal)
	assert.True(t, dec("10.01").Equal(total), "total fue %s", total)
}

func TestComputeTotals_SinDescuento(t *testing.T) {
	lines := []sale.Line{{Quantity: 4, UnitPrice: dec("2.25")}}
	subtotal, total, err := sale.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, dec("9.00").Equal(subtotal))
	assert.True(t, subtotal.Equal(total))
}

// Descuento igual al subtotal es válido: total cero.
func TestComputeTotals_DescuentoIgualAlSubtotal(t *testing.T) {
	lines := []sale.Line{{Quantity: 1, UnitPrice: dec("15.00")}}
	_, total, err := sale.ComputeTotals(lines, dec("15.00"))
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "total debe ser cero, fue %s", total)
}

// Descuento mayor al subtotal se rechaza: nunca un total negativo.
func TestComputeTotals_DescuentoMayorAlSubtotal(t *testing.T) {
	lines := []sale.Line{{Quantity: 1, UnitPrice: dec("10.00")}}
	_, _, err := sale.ComputeTotals(lines, dec("10.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeTotals_EntradasInvalidas(t *testing.T) {
	valid := []sale.Line{{Quantity: 1, UnitPrice: dec("1.00")}}

	cases := []struct {
		name     string
		lines    []sale.Line
		discount decimal.Decimal
	}{
		{"carrito vacío", nil, decimal.Zero},
		{"cantidad cero", []sale.Line{{Quantity: 0, UnitPrice: dec("1.00")}}, decimal.Zero},
		{"cantidad negativa", []sale.Line{{Quantity: -2, UnitPrice: dec("1.00")}}, decimal.Zero},
		{"precio negativo", []sale.Line{{Quantity: 1, UnitPrice: dec("-0.01")}}, decimal.Zero},
		{"descuento negativo", valid, dec("-1.00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := sale.ComputeTotals(tc.lines, tc.discount)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
