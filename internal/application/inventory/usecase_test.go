package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

const (
	companyID  = "co-1"
	otherCoID  = "co-2"
	userID     = "bodeguero-1"
	warehouse1 = "wh-1"
	prodA      = "prod-a"
)

// newFixture siembra producto y bodega con 10 unidades de stock.
func newFixture(t *testing.T) (*memory.Store, *inventory.RegisterMovementUseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Warehouses().Create(&entity.Warehouse{ID: warehouse1, CompanyID: companyID, Name: "Principal", CreatedAt: now}))
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: prodA, CompanyID: companyID, SKU: "A-1", Name: "Producto A",
		Price: decimal.NewFromInt(10), CreatedAt: now,
	}))
	require.NoError(t, store.Stock().Increment(prodA, warehouse1, 10))

	uc := inventory.NewRegisterMovementUseCase(store, store.Products(), store.Warehouses(), store.Stock())
	return store, uc
}

func stockQty(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	st, err := store.Stock().Get(prodA, warehouse1)
	require.NoError(t, err)
	return st.Quantity
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	store, uc := newFixture(t)

	err := uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeIn, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), stockQty(t, store))

	movs, err := store.Movements().ListByProduct(prodA, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, int64(5), movs[0].Quantity)
	assert.Equal(t, userID, movs[0].CreatedBy)
}

func TestRegisterMovement_SalidaRestaCondicional(t *testing.T) {
	store, uc := newFixture(t)

	err := uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeOut, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), stockQty(t, store))

	// El movimiento de salida registra delta negativo
	movs, err := store.Movements().ListByProduct(prodA, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(-4), movs[0].Quantity)
}

func TestRegisterMovement_SalidaSinStockNoDejaRastro(t *testing.T) {
	store, uc := newFixture(t)

	err := uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeOut, Quantity: 50,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), stockQty(t, store), "el stock no cambió")

	movs, err := store.Movements().ListByProduct(prodA, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "sin cambio de stock no debe haber movimiento")
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	store, uc := newFixture(t)

	// Ajuste negativo (merma)
	err := uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeAdjustment, Quantity: -3,
		Notes: "merma por conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), stockQty(t, store))

	// Ajuste positivo
	err = uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeAdjustment, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), stockQty(t, store))
}

func TestRegisterMovement_DevolucionSumaStock(t *testing.T) {
	store, uc := newFixture(t)

	err := uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeReturn, Quantity: 2,
		SaleID: "sale-123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), stockQty(t, store))

	// La devolución referencia la venta origen
	movs, err := store.Movements().ListBySale("sale-123")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeReturn, movs[0].Type)
}

func TestRegisterMovement_EntradasInvalidas(t *testing.T) {
	_, uc := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.RegisterMovementRequest
	}{
		{"tipo sale reservado al checkout", dto.RegisterMovementRequest{ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeSale, Quantity: 1}},
		{"tipo desconocido", dto.RegisterMovementRequest{ProductID: prodA, WarehouseID: warehouse1, Type: "transfer", Quantity: 1}},
		{"entrada con cantidad cero", dto.RegisterMovementRequest{ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeIn, Quantity: 0}},
		{"entrada con cantidad negativa", dto.RegisterMovementRequest{ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeIn, Quantity: -5}},
		{"ajuste con cantidad cero", dto.RegisterMovementRequest{ProductID: prodA, WarehouseID: warehouse1, Type: entity.MovementTypeAdjustment, Quantity: 0}},
		{"sin producto", dto.RegisterMovementRequest{WarehouseID: warehouse1, Type: entity.MovementTypeIn, Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.RegisterMovement(ctx, companyID, userID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterMovement_ProductoDeOtraEmpresa(t *testing.T) {
	store, uc := newFixture(t)
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "prod-ajeno", CompanyID: otherCoID, SKU: "X-1", Name: "Ajeno",
		Price: decimal.NewFromInt(1), CreatedAt: time.Now(),
	}))

	err := uc.RegisterMovement(context.Background(), companyID, userID, dto.RegisterMovementRequest{
		ProductID: "prod-ajeno", WarehouseID: warehouse1, Type: entity.MovementTypeIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetStock_SinFilaDevuelveCero(t *testing.T) {
	store, uc := newFixture(t)
	require.NoError(t, store.Warehouses().Create(&entity.Warehouse{
		ID: "wh-2", CompanyID: companyID, Name: "Secundaria", CreatedAt: time.Now(),
	}))

	st, err := uc.GetStock(context.Background(), companyID, prodA, "wh-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Quantity)
}
