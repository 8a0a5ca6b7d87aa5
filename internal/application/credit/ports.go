package credit

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repos de cartera.
// Garantiza que el abono y el decremento del saldo se confirmen como unidad:
// nunca un abono registrado sin actualizar el saldo, ni al revés.
type TxRunner interface {
	RunCredit(ctx context.Context, fn func(
		paymentRepo repository.CreditPaymentRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
