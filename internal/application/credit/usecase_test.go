package credit_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/credit"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

const (
	companyID = "co-1"
	otherCoID = "co-2"
	userID    = "cajero-1"
	customer1 = "cust-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newFixture siembra un cliente con deuda de 100.00.
func newFixture(t *testing.T) (*memory.Store, *credit.CreditUseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Customers().Create(&entity.Customer{
		ID: customer1, CompanyID: companyID, Name: "Cliente Uno", TaxID: "900111",
		CreditBalance: dec("100.00"), CreatedAt: now,
	}))
	uc := credit.NewCreditUseCase(store, store.Customers(), store.Payments())
	return store, uc
}

func TestRecordPayment_AbonoDescuentaDeuda(t *testing.T) {
	store, uc := newFixture(t)

	payment, err := uc.RecordPayment(context.Background(), companyID, userID, customer1, dto.RecordPaymentRequest{
		Amount: dec("40.00"),
		Method: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, customer1, payment.CustomerID)
	assert.Equal(t, userID, payment.ReceivedBy)

	customer, err := store.Customers().GetByID(customer1)
	require.NoError(t, err)
	assert.True(t, customer.CreditBalance.Equal(dec("60.00")),
		"100 - 40 = 60, saldo: %s", customer.CreditBalance)

	// El abono quedó en el historial
	payments, err := uc.ListPayments(context.Background(), companyID, customer1, 10, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(dec("40.00")))
}

func TestRecordPayment_VariosAbonosAcumulan(t *testing.T) {
	store, uc := newFixture(t)

	for _, amount := range []string{"30.00", "30.00", "40.00"} {
		_, err := uc.RecordPayment(context.Background(), companyID, userID, customer1, dto.RecordPaymentRequest{
			Amount: dec(amount),
			Method: entity.PaymentBankTransfer,
		})
		require.NoError(t, err)
	}

	customer, err := store.Customers().GetByID(customer1)
	require.NoError(t, err)
	assert.True(t, customer.CreditBalance.IsZero(), "deuda saldada: %s", customer.CreditBalance)
}

func TestRecordPayment_EntradasInvalidas(t *testing.T) {
	_, uc := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.RecordPaymentRequest
		want error
	}{
		{"monto cero", dto.RecordPaymentRequest{Amount: decimal.Zero, Method: entity.PaymentCash}, domain.ErrInvalidInput},
		{"monto negativo", dto.RecordPaymentRequest{Amount: dec("-5.00"), Method: entity.PaymentCash}, domain.ErrInvalidInput},
		{"abono a crédito", dto.RecordPaymentRequest{Amount: dec("5.00"), Method: entity.PaymentCredit}, domain.ErrInvalidInput},
		{"método desconocido", dto.RecordPaymentRequest{Amount: dec("5.00"), Method: "cheque"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordPayment(ctx, companyID, userID, customer1, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRecordPayment_ClienteDeOtraEmpresa(t *testing.T) {
	store, uc := newFixture(t)
	require.NoError(t, store.Customers().Create(&entity.Customer{
		ID: "cust-ajeno", CompanyID: otherCoID, Name: "Ajeno", TaxID: "900333",
		CreditBalance: dec("50.00"), CreatedAt: time.Now(),
	}))

	_, err := uc.RecordPayment(context.Background(), companyID, userID, "cust-ajeno", dto.RecordPaymentRequest{
		Amount: dec("10.00"),
		Method: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// La deuda del cliente ajeno no cambió
	customer, err := store.Customers().GetByID("cust-ajeno")
	require.NoError(t, err)
	assert.True(t, customer.CreditBalance.Equal(dec("50.00")))
}

func TestRecordPayment_ClienteInexistente(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.RecordPayment(context.Background(), companyID, userID, "cust-nope", dto.RecordPaymentRequest{
		Amount: dec("10.00"),
		Method: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
