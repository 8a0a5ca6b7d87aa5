package checkout

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es la unidad de trabajo del checkout: o todos los efectos
// (descuentos de stock, venta, movimientos, saldo del cliente) quedan confirmados,
// o ninguno es observable.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptGenerator genera la representación PDF del recibo de una venta confirmada.
type ReceiptGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		company *entity.Company,
		sale *entity.Sale,
		items []*entity.SaleItem,
		productNames map[string]string,
	) ([]byte, error)
}
