package entity

import "time"

// Stock representa el stock actual de un producto en una bodega.
// Quantity nunca es negativa en estado confirmado; el descuento se hace con
// un write condicional evaluado por el almacén. Las filas no se borran, se dejan en cero.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	MinQuantity int64 // umbral de stock bajo
	UpdatedAt   time.Time
}
