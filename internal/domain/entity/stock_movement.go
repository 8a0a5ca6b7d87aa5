package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada (compra)
	MovementTypeOut        = "out"        // salida manual
	MovementTypeSale       = "sale"       // salida por venta (referencia a Sale)
	MovementTypeAdjustment = "adjustment" // ajuste con signo
	MovementTypeReturn     = "return"     // devolución de mercancía
)

// ValidMovementType indica si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeSale, MovementTypeAdjustment, MovementTypeReturn:
		return true
	}
	return false
}

// StockMovement es el registro de auditoría de cada cambio de stock.
// Append-only: nunca se actualiza ni se borra.
type StockMovement struct {
	ID          string
	CompanyID   string
	WarehouseID string
	ProductID   string
	Type        string // ver constantes MovementType*
	Quantity    int64  // delta con signo: positivo entra, negativo sale
	SaleID      string // referencia a la venta origen (vacío si no aplica)
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string // UserID del actor
}
