// Package inventory registra movimientos de inventario fuera del flujo de venta:
// entradas por compra, salidas manuales, ajustes y devoluciones.
// Comparte con el checkout las mismas primitivas condicionales del stock,
// así que la garantía de no-negatividad es una sola.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
	}
}

// RegisterMovement valida producto y bodega de la empresa, abre la transacción,
// aplica el delta según el tipo y guarda el movimiento de auditoría.
//
// Tipos: in y return suman; out resta (condicional, falla con stock insuficiente);
// adjustment lleva la cantidad con signo. El tipo "sale" solo lo emite el checkout.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) error {
	if companyID == "" || userID == "" {
		return domain.ErrUnauthorized
	}
	if in.ProductID == "" || in.WarehouseID == "" || !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeSale {
		return domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeAdjustment {
		if in.Quantity == 0 {
			return domain.ErrInvalidInput
		}
	} else if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.RunMovement(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Delta con signo para el registro de auditoría
		delta := in.Quantity
		switch in.Type {
		case entity.MovementTypeIn, entity.MovementTypeReturn:
			if err := stockRepo.Increment(in.ProductID, in.WarehouseID, in.Quantity); err != nil {
				return err
			}
		case entity.MovementTypeOut:
			if err := stockRepo.TryDecrement(in.ProductID, in.WarehouseID, in.Quantity); err != nil {
				return err
			}
			delta = -in.Quantity
		case entity.MovementTypeAdjustment:
			if in.Quantity > 0 {
				if err := stockRepo.Increment(in.ProductID, in.WarehouseID, in.Quantity); err != nil {
					return err
				}
			} else {
				if err := stockRepo.TryDecrement(in.ProductID, in.WarehouseID, -in.Quantity); err != nil {
					return err
				}
			}
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			WarehouseID: in.WarehouseID,
			ProductID:   in.ProductID,
			Type:        in.Type,
			Quantity:    delta,
			SaleID:      in.SaleID,
			Notes:       in.Notes,
			CreatedAt:   now,
			CreatedBy:   userID,
		}
		return movRepo.Create(mov)
	})
}

// GetStock consulta el stock de un producto en una bodega (validando tenant).
func (uc *RegisterMovementUseCase) GetStock(ctx context.Context, companyID, productID, warehouseID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	wh, _ := uc.warehouseRepo.GetByID(warehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:   stock.ProductID,
		WarehouseID: stock.WarehouseID,
		Quantity:    stock.Quantity,
		MinQuantity: stock.MinQuantity,
	}, nil
}
