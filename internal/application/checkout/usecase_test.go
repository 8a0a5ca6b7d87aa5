package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/checkout"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: empresa con bodega, productos con stock y un cliente
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID  = "co-1"
	otherCoID  = "co-2"
	userID     = "user-1"
	warehouse1 = "wh-1"
	prodA      = "prod-a"
	prodB      = "prod-b"
	prodC      = "prod-c"
	prodAjeno  = "prod-ajeno" // pertenece a otra empresa
	customer1  = "cust-1"
	custAjeno  = "cust-ajeno"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// newFixture siembra el store y construye el caso de uso sobre él.
func newFixture(t *testing.T) (*memory.Store, *checkout.CheckoutUseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.Companies().Create(&entity.Company{ID: companyID, Name: "Tienda Uno", Status: "active", CreatedAt: now}))
	require.NoError(t, store.Companies().Create(&entity.Company{ID: otherCoID, Name: "Tienda Dos", Status: "active", CreatedAt: now}))
	require.NoError(t, store.Warehouses().Create(&entity.Warehouse{ID: warehouse1, CompanyID: companyID, Name: "Principal", CreatedAt: now}))

	products := []*entity.Product{
		{ID: prodA, CompanyID: companyID, SKU: "A-1", Name: "Producto A", Price: dec("10.00"), CreatedAt: now},
		{ID: prodB, CompanyID: companyID, SKU: "B-1", Name: "Producto B", Price: dec("5.50"), CreatedAt: now},
		{ID: prodC, CompanyID: companyID, SKU: "C-1", Name: "Producto C", Price: dec("2.00"), CreatedAt: now},
		{ID: prodAjeno, CompanyID: otherCoID, SKU: "X-1", Name: "Ajeno", Price: dec("1.00"), CreatedAt: now},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(p))
	}

	require.NoError(t, store.Stock().Increment(prodA, warehouse1, 10))
	require.NoError(t, store.Stock().Increment(prodB, warehouse1, 10))
	require.NoError(t, store.Stock().Increment(prodC, warehouse1, 1)) // poco stock a propósito

	require.NoError(t, store.Customers().Create(&entity.Customer{ID: customer1, CompanyID: companyID, Name: "Cliente Uno", TaxID: "900111", CreditBalance: decimal.Zero, CreatedAt: now}))
	require.NoError(t, store.Customers().Create(&entity.Customer{ID: custAjeno, CompanyID: otherCoID, Name: "Cliente Ajeno", TaxID: "900222", CreditBalance: decimal.Zero, CreatedAt: now}))

	uc := checkout.NewCheckoutUseCase(store, store.Products(), store.Warehouses(), store.Customers(), store.Sales())
	return store, uc
}

func stockQty(t *testing.T, store *memory.Store, productID string) int64 {
	t.Helper()
	st, err := store.Stock().Get(productID, warehouse1)
	require.NoError(t, err)
	return st.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_VentaContadoExitosa(t *testing.T) {
	store, uc := newFixture(t)

	resp, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCash,
		Discount:      dec("3.00"),
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 2, UnitPrice: decPtr("10.00")},
			{ProductID: prodB, Quantity: 1, UnitPrice: decPtr("5.50")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.Subtotal.Equal(dec("25.50")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(dec("22.50")), "total: %s", resp.Total)
	assert.Len(t, resp.Items, 2)

	// Stock descontado
	assert.Equal(t, int64(8), stockQty(t, store, prodA))
	assert.Equal(t, int64(9), stockQty(t, store, prodB))

	// Un movimiento "sale" por línea, cantidad negativa, referenciando la venta
	movs, err := store.Movements().ListBySale(resp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeSale, m.Type)
		assert.Negative(t, m.Quantity)
		assert.Equal(t, resp.ID, m.SaleID)
		assert.Equal(t, userID, m.CreatedBy)
	}

	// La venta quedó persistida con sus líneas
	got, err := uc.GetSale(context.Background(), companyID, resp.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestCheckout_PrecioDeCatalogoPorDefecto(t *testing.T) {
	_, uc := newFixture(t)

	resp, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 3}, // sin precio: usa el del catálogo (10.00)
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("30.00")), "total: %s", resp.Total)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("10.00")))
}

func TestCheckout_PrecioCeroExplicitoEsRegalo(t *testing.T) {
	store, uc := newFixture(t)

	// Cero explícito != precio ausente: la línea de regalo no se cobra,
	// pero sí descuenta inventario y deja su movimiento.
	resp, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")},
			{ProductID: prodB, Quantity: 1, UnitPrice: decPtr("0.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(dec("10.00")), "total: %s", resp.Total)
	assert.True(t, resp.Items[1].UnitPrice.IsZero())
	assert.True(t, resp.Items[1].LineTotal.IsZero())
	assert.Equal(t, int64(9), stockQty(t, store, prodB))
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_RollbackSiUnaLineaNoAlcanza(t *testing.T) {
	store, uc := newFixture(t)

	// La tercera línea pide más de lo que hay (prodC tiene 1)
	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 2, UnitPrice: decPtr("10.00")},
			{ProductID: prodB, Quantity: 2, UnitPrice: decPtr("5.50")},
			{ProductID: prodC, Quantity: 5, UnitPrice: decPtr("2.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El error nombra el producto que no alcanzó
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, prodC, stockErr.ProductID)

	// Nada cambió: ni stock de las líneas previas, ni ventas, ni movimientos
	assert.Equal(t, int64(10), stockQty(t, store, prodA))
	assert.Equal(t, int64(10), stockQty(t, store, prodB))
	assert.Equal(t, int64(1), stockQty(t, store, prodC))

	sales, err := store.Sales().ListByCompany(companyID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

// movimientosRotos envuelve el repo de movimientos para fallar siempre en Create.
type movimientosRotos struct {
	repository.StockMovementRepository
}

func (movimientosRotos) Create(*entity.StockMovement) error {
	return errors.New("movimientos: escritura rechazada")
}

// txConMovimientosRotos ejecuta la transacción real pero con el repo de movimientos roto.
type txConMovimientosRotos struct {
	inner checkout.TxRunner
}

func (r txConMovimientosRotos) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.inner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		return fn(stockRepo, movimientosRotos{movRepo}, saleRepo, customerRepo)
	})
}

func TestCheckout_FalloDeMovimientoRevierteTodo(t *testing.T) {
	store, _ := newFixture(t)

	// Una venta sin rastro de movimientos no es aceptable: si el movimiento no se
	// puede escribir, el descuento de stock y la venta ya persistidos deben revertirse.
	uc := checkout.NewCheckoutUseCase(
		txConMovimientosRotos{inner: store},
		store.Products(), store.Warehouses(), store.Customers(), store.Sales(),
	)

	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		CustomerID:    customer1,
		PaymentMethod: entity.PaymentCredit,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 2, UnitPrice: decPtr("10.00")},
		},
	})
	require.Error(t, err)

	// Stock intacto, sin ventas, sin movimientos, deuda del cliente sin tocar
	assert.Equal(t, int64(10), stockQty(t, store, prodA))

	sales, err := store.Sales().ListByCompany(companyID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)

	movs, err := store.Movements().ListByProduct(prodA, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	customer, err := store.Customers().GetByID(customer1)
	require.NoError(t, err)
	assert.True(t, customer.CreditBalance.IsZero(), "saldo: %s", customer.CreditBalance)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: nunca sobrevender
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_NoSobreventaConcurrente(t *testing.T) {
	store, uc := newFixture(t)

	// prodC con 5 unidades; dos cajeros piden 3 cada uno al mismo tiempo
	require.NoError(t, store.Stock().Increment(prodC, warehouse1, 4)) // 1 + 4 = 5

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
				WarehouseID:   warehouse1,
				PaymentMethod: entity.PaymentCash,
				Items: []dto.SaleItemRequest{
					{ProductID: prodC, Quantity: 3, UnitPrice: decPtr("2.00")},
				},
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un checkout debe ganar")
	assert.Equal(t, int64(2), stockQty(t, store, prodC), "5 - 3 = 2, nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento multi-tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_ProductoDeOtraEmpresa(t *testing.T) {
	store, uc := newFixture(t)

	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: prodAjeno, Quantity: 1, UnitPrice: decPtr("1.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	sales, _ := store.Sales().ListByCompany(companyID, 10, 0)
	assert.Empty(t, sales, "no debe quedar ningún efecto")
}

func TestCheckout_ClienteDeOtraEmpresa(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		CustomerID:    custAjeno,
		PaymentMethod: entity.PaymentCredit,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCheckout_BodegaInexistente(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   "wh-no-existe",
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSale_TenantAjeno(t *testing.T) {
	_, uc := newFixture(t)

	resp, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")}},
	})
	require.NoError(t, err)

	_, err = uc.GetSale(context.Background(), otherCoID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Crédito (fiado)
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_CreditoIncrementaDeuda(t *testing.T) {
	store, uc := newFixture(t)

	resp, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		CustomerID:    customer1,
		PaymentMethod: entity.PaymentCredit,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 10, UnitPrice: decPtr("10.00")},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Total.Equal(dec("100.00")))

	customer, err := store.Customers().GetByID(customer1)
	require.NoError(t, err)
	assert.True(t, customer.CreditBalance.Equal(dec("100.00")),
		"la deuda debe subir exactamente el total: %s", customer.CreditBalance)
}

func TestCheckout_CreditoExigeCliente(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID:   warehouse1,
		PaymentMethod: entity.PaymentCredit,
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_EntradasInvalidas(t *testing.T) {
	_, uc := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CheckoutRequest
		want error
	}{
		{"carrito vacío", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash}, domain.ErrInvalidInput},
		{"método de pago desconocido", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: "cheque",
			Items: []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1}}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash,
			Items: []dto.SaleItemRequest{{ProductID: prodA, Quantity: 0}}}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash,
			Items: []dto.SaleItemRequest{{ProductID: prodA, Quantity: -1}}}, domain.ErrInvalidInput},
		{"precio negativo", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash,
			Items: []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("-1.00")}}}, domain.ErrInvalidInput},
		{"descuento mayor al subtotal", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash, Discount: dec("100.00"),
			Items: []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")}}}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CheckoutRequest{WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash,
			Items: []dto.SaleItemRequest{{ProductID: "prod-nope", Quantity: 1}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Checkout(ctx, companyID, userID, tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_ReintentoIdempotenteDevuelveLaOriginal(t *testing.T) {
	store, uc := newFixture(t)

	req := dto.CheckoutRequest{
		WarehouseID:    warehouse1,
		PaymentMethod:  entity.PaymentCash,
		IdempotencyKey: "pos-7-ticket-42",
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 2, UnitPrice: decPtr("10.00")},
		},
	}

	first, err := uc.Checkout(context.Background(), companyID, userID, req)
	require.NoError(t, err)

	second, err := uc.Checkout(context.Background(), companyID, userID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "el reintento debe devolver la venta original")
	assert.Equal(t, int64(8), stockQty(t, store, prodA), "el stock solo se descuenta una vez")

	sales, err := store.Sales().ListByCompany(companyID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestCheckout_MismaClaveOtraEmpresaNoColisiona(t *testing.T) {
	store, uc := newFixture(t)

	// Empresa 2 con su propia bodega, producto y stock
	now := time.Now()
	require.NoError(t, store.Warehouses().Create(&entity.Warehouse{ID: "wh-2", CompanyID: otherCoID, Name: "Ajena", CreatedAt: now}))
	require.NoError(t, store.Stock().Increment(prodAjeno, "wh-2", 10))
	uc2 := checkout.NewCheckoutUseCase(store, store.Products(), store.Warehouses(), store.Customers(), store.Sales())

	key := "ticket-compartido"
	first, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		WarehouseID: warehouse1, PaymentMethod: entity.PaymentCash, IdempotencyKey: key,
		Items: []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1, UnitPrice: decPtr("10.00")}},
	})
	require.NoError(t, err)

	second, err := uc2.Checkout(context.Background(), otherCoID, "user-2", dto.CheckoutRequest{
		WarehouseID: "wh-2", PaymentMethod: entity.PaymentCash, IdempotencyKey: key,
		Items: []dto.SaleItemRequest{{ProductID: prodAjeno, Quantity: 1, UnitPrice: decPtr("1.00")}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "la clave es única por empresa, no global")
}
