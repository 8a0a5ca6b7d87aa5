package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// CreditPaymentRepository es el puerto de persistencia de abonos (append-only).
type CreditPaymentRepository interface {
	Create(payment *entity.CreditPayment) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditPayment, error)
}
