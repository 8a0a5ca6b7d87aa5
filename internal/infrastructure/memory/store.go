// Package memory implementa todos los puertos de persistencia en memoria.
// Se usa en pruebas y en modo demo (sin DATABASE_URL). Las garantías
// transaccionales se emulan con un mutex global y snapshot: cada Run*
// clona el estado mutable antes de ejecutar y lo restaura si la función falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Ventas-api/internal/application/checkout"
	"github.com/jhoicas/Ventas-api/internal/application/credit"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var (
	_ checkout.TxRunner  = (*Store)(nil)
	_ credit.TxRunner    = (*Store)(nil)
	_ inventory.TxRunner = (*Store)(nil)
)

// Store guarda todo el estado por valor. Los repositorios se obtienen como
// vistas (Companies(), Stock(), ...) que toman el lock y delegan en los do*.
// stockKey = productID + "|" + warehouseID.
type Store struct {
	mu          sync.Mutex
	companies   map[string]entity.Company
	users       map[string]entity.User
	warehouses  map[string]entity.Warehouse
	products    map[string]entity.Product
	customers   map[string]entity.Customer
	stock       map[string]entity.Stock
	movements   []entity.StockMovement
	sales       map[string]entity.Sale
	saleItems   map[string][]entity.SaleItem
	salesByIdem map[string]string // companyID|key -> saleID
	payments    []entity.CreditPayment
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		companies:   make(map[string]entity.Company),
		users:       make(map[string]entity.User),
		warehouses:  make(map[string]entity.Warehouse),
		products:    make(map[string]entity.Product),
		customers:   make(map[string]entity.Customer),
		stock:       make(map[string]entity.Stock),
		sales:       make(map[string]entity.Sale),
		saleItems:   make(map[string][]entity.SaleItem),
		salesByIdem: make(map[string]string),
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func idemKey(companyID, key string) string {
	return companyID + "|" + key
}

// page aplica limit/offset al estilo SQL sobre una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ---- snapshot / restore ----

// snapshot clona solo el estado que las unidades de trabajo mutan.
// El catálogo (companies, users, warehouses, products) no participa en Run*.
type snapshot struct {
	customers   map[string]entity.Customer
	stock       map[string]entity.Stock
	movements   []entity.StockMovement
	sales       map[string]entity.Sale
	saleItems   map[string][]entity.SaleItem
	salesByIdem map[string]string
	payments    []entity.CreditPayment
}

// takeSnapshot requiere el lock.
func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		customers:   make(map[string]entity.Customer, len(s.customers)),
		stock:       make(map[string]entity.Stock, len(s.stock)),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		sales:       make(map[string]entity.Sale, len(s.sales)),
		saleItems:   make(map[string][]entity.SaleItem, len(s.saleItems)),
		salesByIdem: make(map[string]string, len(s.salesByIdem)),
		payments:    append([]entity.CreditPayment(nil), s.payments...),
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.stock {
		snap.stock[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	for k, v := range s.saleItems {
		snap.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	for k, v := range s.salesByIdem {
		snap.salesByIdem[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.customers = snap.customers
	s.stock = snap.stock
	s.movements = snap.movements
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.salesByIdem = snap.salesByIdem
	s.payments = snap.payments
}

// ---- unidades de trabajo ----

// RunSale ejecuta fn bajo el lock; si fn falla, ningún efecto es observable.
func (s *Store) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.takeSnapshot()
	if err := fn(txStock{s}, txMovements{s}, txSales{s}, txCustomers{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunCredit ejecuta fn bajo el lock con semántica de rollback.
func (s *Store) RunCredit(ctx context.Context, fn func(
	paymentRepo repository.CreditPaymentRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.takeSnapshot()
	if err := fn(txPayments{s}, txCustomers{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunMovement ejecuta fn bajo el lock con semántica de rollback.
func (s *Store) RunMovement(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.takeSnapshot()
	if err := fn(txStock{s}, txMovements{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}
