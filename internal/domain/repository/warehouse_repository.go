package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// WarehouseRepository es el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// ListByCompany ordena por fecha de creación; el primer elemento es la
	// "primera bodega configurada" usada como fallback en checkout.
	ListByCompany(companyID string) ([]*entity.Warehouse, error)
}
