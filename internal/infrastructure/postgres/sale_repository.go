package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta. La clave de idempotencia tiene
// constraint único por empresa; la violación se reporta como ErrDuplicate
// para que el orquestador resuelva el reintento.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, user_id, warehouse_id, customer_id, payment_method,
		                   subtotal, discount, total, idempotency_key, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.UserID, sale.WarehouseID, nullIfEmpty(sale.CustomerID),
		sale.PaymentMethod, sale.Subtotal, sale.Discount, sale.Total,
		nullIfEmpty(sale.IdempotencyKey), sale.Date, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, user_id, warehouse_id, customer_id, payment_method,
		       subtotal, discount, total, idempotency_key, date, created_at
		FROM sales WHERE id = $1`
	return r.scanSale(r.q.QueryRow(context.Background(), query, id))
}

// GetByIdempotencyKey busca una venta previa de la empresa con esa clave.
func (r *SaleRepo) GetByIdempotencyKey(companyID, key string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, user_id, warehouse_id, customer_id, payment_method,
		       subtotal, discount, total, idempotency_key, date, created_at
		FROM sales WHERE company_id = $1 AND idempotency_key = $2`
	return r.scanSale(r.q.QueryRow(context.Background(), query, companyID, key))
}

// GetItemsBySaleID obtiene todas las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany lista ventas de la empresa, más recientes primero.
func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, company_id, user_id, warehouse_id, customer_id, payment_method,
		       subtotal, discount, total, idempotency_key, date, created_at
		FROM sales WHERE company_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID, idemKey *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.UserID, &s.WarehouseID, &customerID,
			&s.PaymentMethod, &s.Subtotal, &s.Discount, &s.Total, &idemKey, &s.Date, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.CustomerID = derefStr(customerID)
		s.IdempotencyKey = derefStr(idemKey)
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, idemKey *string
	err := row.Scan(&s.ID, &s.CompanyID, &s.UserID, &s.WarehouseID, &customerID,
		&s.PaymentMethod, &s.Subtotal, &s.Discount, &s.Total, &idemKey, &s.Date, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.CustomerID = derefStr(customerID)
	s.IdempotencyKey = derefStr(idemKey)
	return &s, nil
}
