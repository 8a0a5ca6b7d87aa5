package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (usable con pool o tx).
// La tabla es append-only: este adaptador no expone UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento de auditoría.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, warehouse_id, product_id, type, quantity, sale_id, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.WarehouseID, m.ProductID, m.Type, m.Quantity,
		nullIfEmpty(m.SaleID), m.Notes, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListBySale lista los movimientos asociados a una venta.
func (r *StockMovementRepo) ListBySale(saleID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, warehouse_id, product_id, type, quantity, sale_id, notes, created_at, created_by
		FROM stock_movements WHERE sale_id = $1 ORDER BY created_at`
	return r.queryMovements(query, saleID)
}

// ListByProduct lista movimientos de un producto con rango de fecha opcional.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, warehouse_id, product_id, type, quantity, sale_id, notes, created_at, created_by
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	return r.queryMovements(query, productID, from, to, limit, offset)
}

func (r *StockMovementRepo) queryMovements(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var saleID *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.WarehouseID, &m.ProductID, &m.Type,
			&m.Quantity, &saleID, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.SaleID = derefStr(saleID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
