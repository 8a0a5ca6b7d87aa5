package dto

import "github.com/shopspring/decimal"

// CheckoutRequest body para POST /api/sales.
// WarehouseID: bodega de la cual se descuenta el inventario; si va vacía, el handler
// resuelve la primera bodega configurada de la empresa y la pasa explícita.
// CustomerID es obligatorio cuando PaymentMethod = "credit".
// IdempotencyKey (opcional): un reintento con la misma clave devuelve la venta original.
type CheckoutRequest struct {
	WarehouseID    string            `json:"warehouse_id,omitempty"`
	CustomerID     string            `json:"customer_id,omitempty"`
	PaymentMethod  string            `json:"payment_method"`
	Discount       decimal.Decimal   `json:"discount"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Items          []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea del carrito (producto, cantidad, precio unitario).
// UnitPrice es opcional: si no viene se usa el precio de catálogo del producto;
// un cero explícito se respeta (línea de regalo).
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SaleResponse venta con detalle para POST /api/sales y GET /api/sales/:id.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	UserID        string             `json:"user_id"`
	WarehouseID   string             `json:"warehouse_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	Date          string             `json:"date"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de la venta en la respuesta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}
