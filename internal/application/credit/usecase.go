// Package credit implementa la cartera de clientes: abonos contra la deuda
// acumulada por ventas a crédito.
package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// CreditUseCase registra abonos y consulta el historial de pagos de un cliente.
type CreditUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	paymentRepo  repository.CreditPaymentRepository
}

// NewCreditUseCase construye el caso de uso.
func NewCreditUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.CreditPaymentRepository,
) *CreditUseCase {
	return &CreditUseCase{txRunner: txRunner, customerRepo: customerRepo, paymentRepo: paymentRepo}
}

// RecordPayment registra un abono y descuenta el saldo del cliente en una sola transacción.
// El decremento del saldo es un update aritmético evaluado por el almacén
// (credit_balance = credit_balance - amount), nunca leer-calcular-escribir.
func (uc *CreditUseCase) RecordPayment(ctx context.Context, companyID, userID, customerID string, in dto.RecordPaymentRequest) (*dto.CreditPaymentResponse, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if customerID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Method {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentBankTransfer:
	default:
		// Un abono no puede pagarse a crédito.
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	payment := &entity.CreditPayment{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: customerID,
		Amount:     in.Amount,
		Method:     in.Method,
		Notes:      in.Notes,
		ReceivedBy: userID,
		CreatedAt:  time.Now(),
	}

	err = uc.txRunner.RunCredit(ctx, func(
		paymentRepo repository.CreditPaymentRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		return customerRepo.AdjustCreditBalance(customerID, companyID, in.Amount.Neg())
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(payment), nil
}

// ListPayments lista los abonos de un cliente (más recientes primero).
func (uc *CreditUseCase) ListPayments(ctx context.Context, companyID, customerID string, limit, offset int) ([]*dto.CreditPaymentResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	payments, err := uc.paymentRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CreditPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

func toPaymentResponse(p *entity.CreditPayment) *dto.CreditPaymentResponse {
	return &dto.CreditPaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Method:     p.Method,
		Notes:      p.Notes,
		ReceivedBy: p.ReceivedBy,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
