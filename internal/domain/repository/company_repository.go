package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// CompanyRepository es el puerto de persistencia para empresas (tenants).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
