package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// CustomerRepository es el puerto de persistencia para clientes.
// AdjustCreditBalance es un update aritmético de una sola operación
// (credit_balance = credit_balance + delta) evaluado por el almacén;
// el saldo nunca se calcula en el caller.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	// AdjustCreditBalance suma delta (positivo = venta a crédito, negativo = abono).
	// Retorna ErrNotFound si el cliente no existe o no pertenece a la empresa.
	AdjustCreditBalance(customerID, companyID string, delta decimal.Decimal) error
}
