package sales

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore base de datos en memoria. RunSales serializa las transacciones (equivale a bloquear
// las filas tocadas) y restaura una copia del estado si fn falla.
type memStore struct {
	mu sync.Mutex

	products map[int64]*entity.Product
	clients  map[int64]*entity.Client
	users    map[int64]*entity.User
	sales    map[int64]*entity.Sale
	details  map[int64]*entity.SaleDetail

	nextSaleID   int64
	nextDetailID int64

	commitErr error
	txCount   int
	rollbacks int

	// trace registra las llamadas de la última transacción, en orden.
	trace []string
}

func newMemStore() *memStore {
	return &memStore{
		products: map[int64]*entity.Product{},
		clients:  map[int64]*entity.Client{1: {ID: 1, Name: "Ana Pérez", DNI: "12345678"}},
		users:    map[int64]*entity.User{1: {ID: 1, Username: "vendedor1", Role: entity.RoleVendedor}},
		sales:    map[int64]*entity.Sale{},
		details:  map[int64]*entity.SaleDetail{},
	}
}

type snapshot struct {
	products map[int64]entity.Product
	sales    map[int64]entity.Sale
	details  map[int64]entity.SaleDetail
	nextSale int64
	nextDet  int64
}

func (m *memStore) snapshot() snapshot {
	s := snapshot{
		products: map[int64]entity.Product{},
		sales:    map[int64]entity.Sale{},
		details:  map[int64]entity.SaleDetail{},
		nextSale: m.nextSaleID,
		nextDet:  m.nextDetailID,
	}
	for k, v := range m.products {
		s.products[k] = *v
	}
	for k, v := range m.sales {
		s.sales[k] = *v
	}
	for k, v := range m.details {
		s.details[k] = *v
	}
	return s
}

func (m *memStore) restore(s snapshot) {
	m.products = map[int64]*entity.Product{}
	for k, v := range s.products {
		v := v
		m.products[k] = &v
	}
	m.sales = map[int64]*entity.Sale{}
	for k, v := range s.sales {
		v := v
		m.sales[k] = &v
	}
	m.details = map[int64]*entity.SaleDetail{}
	for k, v := range s.details {
		v := v
		m.details[k] = &v
	}
	m.nextSaleID = s.nextSale
	m.nextDetailID = s.nextDet
}

func (m *memStore) RunSales(ctx context.Context, fn func(repos TxRepos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++
	m.trace = nil

	snap := m.snapshot()
	repos := TxRepos{Sales: memSales{m}, Stock: memStock{m}, Clients: memClients{m}, Users: memUsers{m}}
	if err := fn(repos); err != nil {
		m.restore(snap)
		m.rollbacks++
		return err
	}
	if m.commitErr != nil {
		m.restore(snap)
		m.rollbacks++
		return domain.Infrastructure("commit transaction", m.commitErr)
	}
	return nil
}

func (m *memStore) addProduct(id int64, name string, stock int, price string) {
	m.products[id] = &entity.Product{ID: id, Name: name, Stock: stock, Price: mustDec(price)}
}

func (m *memStore) stock(id int64) int {
	return m.products[id].Stock
}

// Los fakes de repositorio no toman el mutex: dentro de RunSales ya está tomado
// y las lecturas de los tests son secuenciales.
type (
	memSales    struct{ m *memStore }
	memStock    struct{ m *memStore }
	memClients  struct{ m *memStore }
	memUsers    struct{ m *memStore }
	memProducts struct{ m *memStore }
)

var (
	_ repository.SaleRepository    = memSales{}
	_ repository.StockRepository   = memStock{}
	_ repository.ClientRepository  = memClients{}
	_ repository.UserRepository    = memUsers{}
	_ repository.ProductRepository = memProducts{}
)

func (r memStock) GetForUpdate(ctx context.Context, productID int64) (*entity.Product, error) {
	p, ok := r.m.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memStock) Decrement(ctx context.Context, productID int64, quantity int) (bool, error) {
	p, ok := r.m.products[productID]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (r memStock) Restore(ctx context.Context, productID int64, quantity int) error {
	r.m.trace = append(r.m.trace, "restore stock")
	if p, ok := r.m.products[productID]; ok {
		p.Stock += quantity
	}
	return nil
}

func (r memSales) Create(ctx context.Context, sale *entity.Sale) error {
	r.m.nextSaleID++
	sale.ID = r.m.nextSaleID
	cp := *sale
	r.m.sales[sale.ID] = &cp
	return nil
}

func (r memSales) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, ok := r.m.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	if c, ok := r.m.clients[cp.ClientID]; ok {
		cp.ClientName = c.Name
	}
	if u, ok := r.m.users[cp.SellerID]; ok {
		cp.SellerName = u.Username
	}
	return &cp, nil
}

func (r memSales) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	r.m.trace = append(r.m.trace, "lock sale")
	return r.GetByID(ctx, id)
}

func (r memSales) UpdateHeader(ctx context.Context, sale *entity.Sale) error {
	if _, ok := r.m.sales[sale.ID]; !ok {
		return domain.NotFound("venta", sale.ID)
	}
	cp := *sale
	r.m.sales[sale.ID] = &cp
	return nil
}

func (r memSales) Delete(ctx context.Context, id int64) (bool, error) {
	r.m.trace = append(r.m.trace, "delete sale")
	if _, ok := r.m.sales[id]; !ok {
		return false, nil
	}
	delete(r.m.sales, id)
	return true, nil
}

func (r memSales) List(ctx context.Context, f repository.ListFilter) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for id := range r.m.sales {
		s, _ := r.GetByID(ctx, id)
		if f.Search != "" && !strings.Contains(strings.ToLower(s.ClientName), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := len(out)
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r memSales) AddDetail(ctx context.Context, d *entity.SaleDetail) error {
	if _, ok := r.m.sales[d.SaleID]; !ok {
		return errors.New("detalle sin venta")
	}
	r.m.nextDetailID++
	d.ID = r.m.nextDetailID
	cp := *d
	r.m.details[d.ID] = &cp
	return nil
}

func (r memSales) ListDetails(ctx context.Context, saleID int64) ([]*entity.SaleDetail, error) {
	r.m.trace = append(r.m.trace, "list details")
	var out []*entity.SaleDetail
	for _, d := range r.m.details {
		if d.SaleID == saleID {
			cp := *d
			if p, ok := r.m.products[d.ProductID]; ok {
				cp.ProductName = p.Name
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSales) DeleteDetails(ctx context.Context, saleID int64) error {
	r.m.trace = append(r.m.trace, "delete details")
	for id, d := range r.m.details {
		if d.SaleID == saleID {
			delete(r.m.details, id)
		}
	}
	return nil
}

func (r memClients) Create(ctx context.Context, c *entity.Client) error { return errNotUsed }
func (r memClients) Update(ctx context.Context, c *entity.Client) error { return errNotUsed }
func (r memClients) Delete(ctx context.Context, id int64) error { return errNotUsed }

func (r memClients) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, ok := r.m.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r memClients) List(ctx context.Context, f repository.ListFilter) ([]*entity.Client, int, error) {
	all, _ := r.ListAll(ctx)
	return all, len(all), nil
}

func (r memClients) ListAll(ctx context.Context) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.m.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) Create(ctx context.Context, u *entity.User) error { return errNotUsed }
func (r memUsers) Update(ctx context.Context, u *entity.User) error { return errNotUsed }
func (r memUsers) UpdatePassword(ctx context.Context, id int64, hash string) error { return errNotUsed }
func (r memUsers) Delete(ctx context.Context, id int64) error { return errNotUsed }

func (r memUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.m.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) List(ctx context.Context, f repository.ListFilter) ([]*entity.User, int, error) {
	all, _ := r.ListAll(ctx)
	return all, len(all), nil
}

func (r memUsers) ListAll(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProducts) Create(ctx context.Context, p *entity.Product) error { return errNotUsed }
func (r memProducts) Update(ctx context.Context, p *entity.Product) error { return errNotUsed }
func (r memProducts) Delete(ctx context.Context, id int64) error { return errNotUsed }

func (r memProducts) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return memStock(r).GetForUpdate(ctx, id)
}

func (r memProducts) List(ctx context.Context, f repository.ListFilter) ([]*entity.Product, int, error) {
	all, _ := r.ListInStock(ctx)
	return all, len(all), nil
}

func (r memProducts) ListInStock(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.m.products {
		if p.Stock > 0 {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var errNotUsed = errors.New("no usado en estos tests")

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testDate = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
