package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CreditPaymentRepository = (*CreditPaymentRepo)(nil)

// CreditPaymentRepo implementación de CreditPaymentRepository (usable con pool o tx).
// Append-only: sin UPDATE ni DELETE.
type CreditPaymentRepo struct {
	q Querier
}

// NewCreditPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditPaymentRepository(q Querier) *CreditPaymentRepo {
	return &CreditPaymentRepo{q: q}
}

// Create inserta un abono.
func (r *CreditPaymentRepo) Create(p *entity.CreditPayment) error {
	query := `
		INSERT INTO credit_payments (id, company_id, customer_id, amount, method, notes, received_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.CustomerID, p.Amount, p.Method, p.Notes, p.ReceivedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit payment: %w", err)
	}
	return nil
}

// ListByCustomer lista abonos de un cliente, más recientes primero.
func (r *CreditPaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditPayment, error) {
	query := `
		SELECT id, company_id, customer_id, amount, method, notes, received_by, created_at
		FROM credit_payments WHERE customer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list credit payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditPayment
	for rows.Next() {
		var p entity.CreditPayment
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.CustomerID, &p.Amount, &p.Method,
			&p.Notes, &p.ReceivedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan credit payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
