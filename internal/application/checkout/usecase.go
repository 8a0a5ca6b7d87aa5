package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	domsale "github.com/jhoicas/Ventas-api/internal/domain/sale"
)

// CheckoutUseCase es el orquestador de la transacción de venta: valida el carrito,
// descuenta stock con writes condicionales, persiste cabecera y líneas, registra el
// rastro de movimientos y, en ventas a crédito, incrementa la deuda del cliente —
// todo dentro de una sola transacción con Commit/Rollback.
type CheckoutUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	customerRepo  repository.CustomerRepository
	saleRepo      repository.SaleRepository
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		customerRepo:  customerRepo,
		saleRepo:      saleRepo,
	}
}

// Checkout procesa una venta completa. companyID y userID vienen del token (pre-validados);
// la bodega llega resuelta como parámetro explícito, nunca de estado ambiente.
//
// Pasos: validación completa antes de tocar el almacén; luego, en una sola transacción,
// descuento condicional de stock por línea, persistencia de cabecera+líneas, un movimiento
// tipo "sale" por línea y débito del saldo del cliente si el pago es a crédito.
// Cualquier fallo en cualquier paso revierte todos los anteriores.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, companyID, userID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod == entity.PaymentCredit && in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Reintento idempotente: misma clave + misma empresa devuelve la venta original.
	if in.IdempotencyKey != "" {
		if prev, err := uc.saleRepo.GetByIdempotencyKey(companyID, in.IdempotencyKey); err == nil && prev != nil {
			return uc.toResponse(prev)
		}
	}

	// Validar bodega y que sea de la empresa
	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	// Validar cliente (si viene) y que sea de la empresa
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil || customer == nil {
			return nil, domain.ErrNotFound
		}
		if customer.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	// Validar productos y precios (fuera de la tx, solo lectura). UnitPrice nil
	// significa "precio de catálogo"; un cero explícito se respeta (línea de regalo).
	unitPrices := make([]decimal.Decimal, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if item.UnitPrice != nil {
			unitPrices[i] = *item.UnitPrice
		} else {
			unitPrices[i] = product.Price
		}
	}

	// Totales con la calculadora pura (rechaza descuento > subtotal)
	lines := make([]domsale.Line, len(in.Items))
	for i, item := range in.Items {
		lines[i] = domsale.Line{Quantity: item.Quantity, UnitPrice: unitPrices[i]}
	}
	subtotal, total, err := domsale.ComputeTotals(lines, in.Discount)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		UserID:         userID,
		WarehouseID:    in.WarehouseID,
		CustomerID:     in.CustomerID,
		PaymentMethod:  in.PaymentMethod,
		Subtotal:       subtotal,
		Discount:       in.Discount,
		Total:          total,
		IdempotencyKey: in.IdempotencyKey,
		Date:           now,
		CreatedAt:      now,
	}
	items := make([]*entity.SaleItem, len(in.Items))
	for i, item := range in.Items {
		items[i] = &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrices[i],
			LineTotal: domsale.LineTotal(item.Quantity, unitPrices[i]),
		}
	}

	// Transacción: Commit si todo ok, Rollback si cualquier paso falla
	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// 1) Descuento condicional por línea: "resta solo si el resultado queda >= 0",
		// evaluado por el almacén. Si una línea no alcanza, rollback de todas.
		for _, item := range items {
			if err := stockRepo.TryDecrement(item.ProductID, in.WarehouseID, item.Quantity); err != nil {
				return err
			}
		}

		// 2) Cabecera y líneas como unidad
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// 3) Un movimiento tipo "sale" por línea, cantidad negativa, referenciando la venta.
		// Un fallo aquí aborta la venta: una venta sin rastro de movimientos no es aceptable.
		for _, item := range items {
			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				WarehouseID: in.WarehouseID,
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeSale,
				Quantity:    -item.Quantity,
				SaleID:      sale.ID,
				CreatedAt:   now,
				CreatedBy:   userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		// 4) Venta a crédito: incrementar la deuda del cliente con un update aritmético
		if in.PaymentMethod == entity.PaymentCredit && total.GreaterThan(decimal.Zero) {
			if err := customerRepo.AdjustCreditBalance(in.CustomerID, companyID, total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Carrera en la clave de idempotencia: otro reintento confirmó primero.
		if in.IdempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
			if prev, lookupErr := uc.saleRepo.GetByIdempotencyKey(companyID, in.IdempotencyKey); lookupErr == nil && prev != nil {
				return uc.toResponse(prev)
			}
		}
		return nil, err
	}

	return uc.buildResponse(sale, items), nil
}

// GetSale obtiene una venta por ID con su detalle completo.
func (uc *CheckoutUseCase) GetSale(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(sale)
}

// ListSales lista las ventas de la empresa (más recientes primero).
func (uc *CheckoutUseCase) ListSales(ctx context.Context, companyID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	sales, err := uc.saleRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp, err := uc.toResponse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *CheckoutUseCase) toResponse(sale *entity.Sale) (*dto.SaleResponse, error) {
	items, err := uc.saleRepo.GetItemsBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(sale, items), nil
}

func (uc *CheckoutUseCase) buildResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		CompanyID:     sale.CompanyID,
		UserID:        sale.UserID,
		WarehouseID:   sale.WarehouseID,
		CustomerID:    sale.CustomerID,
		PaymentMethod: sale.PaymentMethod,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		Date:          sale.Date.Format(time.RFC3339),
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
