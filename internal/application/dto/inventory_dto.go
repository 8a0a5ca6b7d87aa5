package dto

// RegisterMovementRequest body para POST /api/inventory/movements.
// Type: in, out, adjustment, return. Quantity con signo solo para adjustment;
// para los demás tipos va positiva.
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Type        string `json:"type"`
	Quantity    int64  `json:"quantity"`
	SaleID      string `json:"sale_id,omitempty"` // referencia para devoluciones
	Notes       string `json:"notes,omitempty"`
}

// StockResponse stock de un producto en una bodega.
type StockResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	MinQuantity int64  `json:"min_quantity"`
}
