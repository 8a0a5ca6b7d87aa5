package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Puertos transaccionales: cada uno tiene una vista sincronizada (para uso
// directo) y una vista tx* sin lock que solo vive dentro de un Run*.
// Ambas delegan en los mismos do* del Store.

var (
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.CreditPaymentRepository = (*PaymentRepo)(nil)

	_ repository.CustomerRepository      = txCustomers{}
	_ repository.StockRepository         = txStock{}
	_ repository.StockMovementRepository = txMovements{}
	_ repository.SaleRepository          = txSales{}
	_ repository.CreditPaymentRepository = txPayments{}
)

// ---- Customer ----

func (s *Store) doCreateCustomer(customer *entity.Customer) error {
	for _, c := range s.customers {
		if c.CompanyID == customer.CompanyID && c.TaxID != "" && c.TaxID == customer.TaxID {
			return domain.ErrDuplicate
		}
	}
	s.customers[customer.ID] = *customer
	return nil
}

func (s *Store) doGetCustomer(id string) (*entity.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) doGetCustomerByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	for _, c := range s.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			cc := c
			return &cc, nil
		}
	}
	return nil, nil
}

func (s *Store) doListCustomersByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for _, c := range s.customers {
		if c.CompanyID == companyID {
			cc := c
			list = append(list, &cc)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (s *Store) doAdjustCreditBalance(customerID, companyID string, delta decimal.Decimal) error {
	c, ok := s.customers[customerID]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	c.CreditBalance = c.CreditBalance.Add(delta)
	c.UpdatedAt = time.Now()
	s.customers[customerID] = c
	return nil
}

type CustomerRepo struct{ s *Store }

// Customers devuelve la vista CustomerRepository del Store.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doCreateCustomer(customer)
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doGetCustomer(id)
}

func (r *CustomerRepo) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doGetCustomerByCompanyAndTaxID(companyID, taxID)
}

func (r *CustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doListCustomersByCompany(companyID, limit, offset)
}

func (r *CustomerRepo) AdjustCreditBalance(customerID, companyID string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doAdjustCreditBalance(customerID, companyID, delta)
}

type txCustomers struct{ s *Store }

func (t txCustomers) Create(c *entity.Customer) error { return t.s.doCreateCustomer(c) }
func (t txCustomers) GetByID(id string) (*entity.Customer, error) {
	return t.s.doGetCustomer(id)
}
func (t txCustomers) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	return t.s.doGetCustomerByCompanyAndTaxID(companyID, taxID)
}
func (t txCustomers) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return t.s.doListCustomersByCompany(companyID, limit, offset)
}
func (t txCustomers) AdjustCreditBalance(customerID, companyID string, delta decimal.Decimal) error {
	return t.s.doAdjustCreditBalance(customerID, companyID, delta)
}

// ---- Stock ----

func (s *Store) doGetStock(productID, warehouseID string) (*entity.Stock, error) {
	st, ok := s.stock[stockKey(productID, warehouseID)]
	if !ok {
		// Mismo contrato que el adaptador SQL: sin fila = cantidad cero.
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	return &st, nil
}

func (s *Store) doTryDecrement(productID, warehouseID string, qty int64) error {
	key := stockKey(productID, warehouseID)
	st, ok := s.stock[key]
	if !ok || st.Quantity < qty {
		return domain.NewInsufficientStockError(productID)
	}
	st.Quantity -= qty
	st.UpdatedAt = time.Now()
	s.stock[key] = st
	return nil
}

func (s *Store) doIncrement(productID, warehouseID string, qty int64) error {
	key := stockKey(productID, warehouseID)
	st, ok := s.stock[key]
	if !ok {
		st = entity.Stock{ProductID: productID, WarehouseID: warehouseID}
	}
	st.Quantity += qty
	st.UpdatedAt = time.Now()
	s.stock[key] = st
	return nil
}

func (s *Store) doListStockByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for _, st := range s.stock {
		if st.WarehouseID == warehouseID {
			ss := st
			list = append(list, &ss)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return page(list, limit, offset), nil
}

type StockRepo struct{ s *Store }

// Stock devuelve la vista StockRepository del Store.
func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }

func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doGetStock(productID, warehouseID)
}

func (r *StockRepo) TryDecrement(productID, warehouseID string, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doTryDecrement(productID, warehouseID, qty)
}

func (r *StockRepo) Increment(productID, warehouseID string, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doIncrement(productID, warehouseID, qty)
}

func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doListStockByWarehouse(warehouseID, limit, offset)
}

type txStock struct{ s *Store }

func (t txStock) Get(productID, warehouseID string) (*entity.Stock, error) {
	return t.s.doGetStock(productID, warehouseID)
}
func (t txStock) TryDecrement(productID, warehouseID string, qty int64) error {
	return t.s.doTryDecrement(productID, warehouseID, qty)
}
func (t txStock) Increment(productID, warehouseID string, qty int64) error {
	return t.s.doIncrement(productID, warehouseID, qty)
}
func (t txStock) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	return t.s.doListStockByWarehouse(warehouseID, limit, offset)
}

// ---- StockMovement ----

func (s *Store) doCreateMovement(m *entity.StockMovement) error {
	s.movements = append(s.movements, *m)
	return nil
}

func (s *Store) doListMovementsBySale(saleID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for i := range s.movements {
		if s.movements[i].SaleID == saleID {
			mm := s.movements[i]
			list = append(list, &mm)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (s *Store) doListMovementsByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for i := range s.movements {
		m := s.movements[i]
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		mm := m
		list = append(list, &mm)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

type MovementRepo struct{ s *Store }

// Movements devuelve la vista StockMovementRepository del Store.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doCreateMovement(m)
}

func (r *MovementRepo) ListBySale(saleID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doListMovementsBySale(saleID)
}

func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doListMovementsByProduct(productID, from, to, limit, offset)
}

type txMovements struct{ s *Store }

func (t txMovements) Create(m *entity.StockMovement) error { return t.s.doCreateMovement(m) }
func (t txMovements) ListBySale(saleID string) ([]*entity.StockMovement, error) {
	return t.s.doListMovementsBySale(saleID)
}
func (t txMovements) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return t.s.doListMovementsByProduct(productID, from, to, limit, offset)
}

// ---- Sale ----

func (s *Store) doCreateSale(sale *entity.Sale) error {
	if _, ok := s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	if sale.IdempotencyKey != "" {
		key := idemKey(sale.CompanyID, sale.IdempotencyKey)
		if _, ok := s.salesByIdem[key]; ok {
			return domain.ErrDuplicate
		}
		s.salesByIdem[key] = sale.ID
	}
	s.sales[sale.ID] = *sale
	return nil
}

func (s *Store) doCreateSaleItem(item *entity.SaleItem) error {
	s.saleItems[item.SaleID] = append(s.saleItems[item.SaleID], *item)
	return nil
}

func (s *Store) doGetSale(id string) (*entity.Sale, error) {
	sale, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (s *Store) doGetSaleItems(saleID string) ([]*entity.SaleItem, error) {
	items := s.saleItems[saleID]
	list := make([]*entity.SaleItem, 0, len(items))
	for i := range items {
		it := items[i]
		list = append(list, &it)
	}
	return list, nil
}

func (s *Store) doGetSaleByIdemKey(companyID, key string) (*entity.Sale, error) {
	saleID, ok := s.salesByIdem[idemKey(companyID, key)]
	if !ok {
		return nil, nil
	}
	return s.doGetSale(saleID)
}

func (s *Store) doListSalesByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, sale := range s.sales {
		if sale.CompanyID == companyID {
			ss := sale
			list = append(list, &ss)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return page(list, limit, offset), nil
}

type SaleRepo struct{ s *Store }

// Sales devuelve la vista SaleRepository del Store.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doCreateSale(sale)
}

func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doCreateSaleItem(item)
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doGetSale(id)
}

func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doGetSaleItems(saleID)
}

func (r *SaleRepo) GetByIdempotencyKey(companyID, key string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doGetSaleByIdemKey(companyID, key)
}

func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doListSalesByCompany(companyID, limit, offset)
}

type txSales struct{ s *Store }

func (t txSales) Create(sale *entity.Sale) error          { return t.s.doCreateSale(sale) }
func (t txSales) CreateItem(item *entity.SaleItem) error  { return t.s.doCreateSaleItem(item) }
func (t txSales) GetByID(id string) (*entity.Sale, error) { return t.s.doGetSale(id) }
func (t txSales) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	return t.s.doGetSaleItems(saleID)
}
func (t txSales) GetByIdempotencyKey(companyID, key string) (*entity.Sale, error) {
	return t.s.doGetSaleByIdemKey(companyID, key)
}
func (t txSales) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	return t.s.doListSalesByCompany(companyID, limit, offset)
}

// ---- CreditPayment ----

func (s *Store) doCreatePayment(p *entity.CreditPayment) error {
	s.payments = append(s.payments, *p)
	return nil
}

func (s *Store) doListPaymentsByCustomer(customerID string, limit, offset int) ([]*entity.CreditPayment, error) {
	var list []*entity.CreditPayment
	for i := range s.payments {
		if s.payments[i].CustomerID == customerID {
			pp := s.payments[i]
			list = append(list, &pp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

type PaymentRepo struct{ s *Store }

// Payments devuelve la vista CreditPaymentRepository del Store.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

func (r *PaymentRepo) Create(p *entity.CreditPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doCreatePayment(p)
}

func (r *PaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.doListPaymentsByCustomer(customerID, limit, offset)
}

type txPayments struct{ s *Store }

func (t txPayments) Create(p *entity.CreditPayment) error { return t.s.doCreatePayment(p) }
func (t txPayments) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditPayment, error) {
	return t.s.doListPaymentsByCustomer(customerID, limit, offset)
}
