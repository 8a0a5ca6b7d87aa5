package checkout

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ReceiptUseCase genera el PDF del recibo de una venta confirmada.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	generator   ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		companyRepo: companyRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// GenerateReceipt devuelve los bytes del PDF del recibo para GET /api/sales/:id/receipt.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, companyID, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			names[it.ProductID] = p.Name
		}
	}
	return uc.generator.GenerateReceiptPDF(ctx, company, sale, items, names)
}
