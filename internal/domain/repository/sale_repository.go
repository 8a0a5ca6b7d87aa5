package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// SaleRepository es el puerto de persistencia de ventas (cabecera + líneas).
// La cabecera y sus líneas se crean como unidad dentro de la transacción de checkout.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	// GetByIdempotencyKey busca una venta previa de la empresa con esa clave (reintentos).
	GetByIdempotencyKey(companyID, key string) (*entity.Sale, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
}
