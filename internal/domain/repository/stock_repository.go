package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// StockRepository es el puerto del libro de inventario (stock por bodega+producto).
// TryDecrement e Increment deben ser writes condicionales/aritméticos de una sola
// operación evaluados por el almacén — nunca leer-comparar-escribir desde el caller.
// Esa es la garantía que impide sobrevender bajo concurrencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// TryDecrement descuenta qty solo si el resultado queda >= 0.
	// Retorna InsufficientStockError (con el producto) si no alcanza.
	TryDecrement(productID, warehouseID string, qty int64) error
	// Increment suma qty, creando la fila si no existe (compras, devoluciones).
	Increment(productID, warehouseID string, qty int64) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
}
