package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID.
// Повторяет правила удалённого API, чтобы консоль можно было
// запускать и тестировать без него.
type MemoryStore struct {
	mu          sync.RWMutex
	nextID      map[string]int64
	clientsByID map[int64]domain.Client
	productByID map[int64]domain.Product
	ordersByID  map[int64]domain.Order
	sums        map[int64]decimal.Decimal
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:      map[string]int64{"client": 1, "product": 1, "order": 1, "item": 1},
		clientsByID: make(map[int64]domain.Client),
		productByID: make(map[int64]domain.Product),
		ordersByID:  make(map[int64]domain.Order),
		sums:        make(map[int64]decimal.Decimal),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

func (m *MemoryStore) id(kind string) int64 {
	id := m.nextID[kind]
	m.nextID[kind]++
	return id
}

func sortedValues[T any](src map[int64]T) []T {
	ids := make([]int64, 0, len(src))
	for id := range src {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, src[id])
	}
	return out
}

// Clients реализует ClientRepository поверх общего хранилища
func (m *MemoryStore) Clients() *MemoryClients { return &MemoryClients{store: m} }

// Products реализует ProductRepository поверх общего хранилища
func (m *MemoryStore) Products() *MemoryProducts { return &MemoryProducts{store: m} }

// Orders реализует OrderRepository и OrdersByClientRepository
func (m *MemoryStore) Orders() *MemoryOrders { return &MemoryOrders{store: m} }

// ClientRepository implementation on wrapper type
type MemoryClients struct{ store *MemoryStore }

var _ ClientRepository = (*MemoryClients)(nil)

func (mc *MemoryClients) List(ctx context.Context) ([]domain.Client, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	return sortedValues(mc.store.clientsByID), nil
}

func (mc *MemoryClients) Create(ctx context.Context, in domain.ClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	c := domain.Client{ID: mc.store.id("client"), Name: in.Name, INN: in.INN}
	mc.store.clientsByID[c.ID] = c
	return &c, nil
}

func (mc *MemoryClients) Update(ctx context.Context, id int64, in domain.ClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	if _, ok := mc.store.clientsByID[id]; !ok {
		return nil, ErrNotFound
	}
	c := domain.Client{ID: id, Name: in.Name, INN: in.INN}
	mc.store.clientsByID[id] = c
	return &c, nil
}

func (mc *MemoryClients) Delete(ctx context.Context, id int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	if _, ok := mc.store.clientsByID[id]; !ok {
		return ErrNotFound
	}
	for _, o := range mc.store.ordersByID {
		if o.ClientID == id {
			return ErrInUse
		}
	}
	delete(mc.store.clientsByID, id)
	delete(mc.store.sums, id)
	return nil
}

// ProductRepository implementation on wrapper type
type MemoryProducts struct{ store *MemoryStore }

var _ ProductRepository = (*MemoryProducts)(nil)

func (mp *MemoryProducts) List(ctx context.Context) ([]domain.Product, error) {
	mp.store.rlock(ctx)
	defer mp.store.runlock(ctx)
	return sortedValues(mp.store.productByID), nil
}

func (mp *MemoryProducts) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, ErrInvalidInput
	}
	mp.store.wlock(ctx)
	defer mp.store.wunlock(ctx)
	p := domain.Product{ID: mp.store.id("product"), Name: in.Name, Unit: in.Unit}
	mp.store.productByID[p.ID] = p
	return &p, nil
}

func (mp *MemoryProducts) Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, ErrInvalidInput
	}
	mp.store.wlock(ctx)
	defer mp.store.wunlock(ctx)
	if _, ok := mp.store.productByID[id]; !ok {
		return nil, ErrNotFound
	}
	p := domain.Product{ID: id, Name: in.Name, Unit: in.Unit}
	mp.store.productByID[id] = p
	return &p, nil
}

func (mp *MemoryProducts) Delete(ctx context.Context, id int64) error {
	mp.store.wlock(ctx)
	defer mp.store.wunlock(ctx)
	if _, ok := mp.store.productByID[id]; !ok {
		return ErrNotFound
	}
	for _, o := range mp.store.ordersByID {
		for _, it := range o.Items {
			if it.ProductID == id {
				return ErrInUse
			}
		}
	}
	delete(mp.store.productByID, id)
	return nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

var (
	_ OrderRepository          = (*MemoryOrders)(nil)
	_ OrdersByClientRepository = (*MemoryOrders)(nil)
)

func (mo *MemoryOrders) List(ctx context.Context) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := sortedValues(mo.store.ordersByID)
	for i := range out {
		out[i].Items = slices.Clone(out[i].Items)
	}
	return out, nil
}

// buildItems проверяет позиции и считает сумму заказа; вызывать под блокировкой записи
func (mo *MemoryOrders) buildItems(orderID int64, in domain.OrderInput) ([]domain.OrderItem, float64, error) {
	if len(in.Items) == 0 {
		return nil, 0, ErrNoItems
	}
	if _, ok := mo.store.clientsByID[in.ClientID]; !ok {
		return nil, 0, fmt.Errorf("client %d: %w", in.ClientID, ErrNotFound)
	}
	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.Price <= 0 {
			return nil, 0, ErrInvalidInput
		}
		if _, ok := mo.store.productByID[it.ProductID]; !ok {
			return nil, 0, fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
		}
		line := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Price)).Round(2)
		total = total.Add(line)
		items = append(items, domain.OrderItem{
			ID:         mo.store.id("item"),
			OrderID:    orderID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			LineAmount: line.InexactFloat64(),
		})
	}
	return items, total.InexactFloat64(), nil
}

func (mo *MemoryOrders) numberTaken(number string, except int64) bool {
	for _, o := range mo.store.ordersByID {
		if o.Number == number && o.ID != except {
			return true
		}
	}
	return false
}

func (mo *MemoryOrders) Create(ctx context.Context, in domain.OrderInput) (*domain.Order, error) {
	if strings.TrimSpace(in.Number) == "" {
		return nil, ErrInvalidInput
	}
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if mo.numberTaken(in.Number, 0) {
		return nil, ErrDuplicate
	}
	id := mo.store.nextID["order"]
	items, total, err := mo.buildItems(id, in)
	if err != nil {
		return nil, err
	}
	mo.store.id("order")
	o := domain.Order{
		ID:          id,
		Number:      in.Number,
		ClientID:    in.ClientID,
		Date:        mo.store.now(),
		Items:       items,
		TotalAmount: total,
	}
	mo.store.ordersByID[id] = o
	o.Items = slices.Clone(items)
	return &o, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, id int64, in domain.OrderInput) (*domain.Order, error) {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if o.IsConfirmed {
		return nil, ErrConfirmed
	}
	if in.Number != "" {
		if mo.numberTaken(in.Number, id) {
			return nil, ErrDuplicate
		}
		o.Number = in.Number
	}
	if in.ClientID != 0 {
		o.ClientID = in.ClientID
	}
	if len(in.Items) > 0 {
		in.ClientID = o.ClientID
		items, total, err := mo.buildItems(id, in)
		if err != nil {
			return nil, err
		}
		o.Items = items
		o.TotalAmount = total
	} else if _, ok := mo.store.clientsByID[o.ClientID]; !ok {
		return nil, fmt.Errorf("client %d: %w", o.ClientID, ErrNotFound)
	}
	mo.store.ordersByID[id] = o
	o.Items = slices.Clone(o.Items)
	return &o, nil
}

func (mo *MemoryOrders) Delete(ctx context.Context, id int64) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return ErrNotFound
	}
	if o.IsConfirmed {
		mo.addSum(o.ClientID, decimal.NewFromFloat(o.TotalAmount).Neg())
	}
	delete(mo.store.ordersByID, id)
	return nil
}

func (mo *MemoryOrders) Confirm(ctx context.Context, id int64) (*domain.Order, error) {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if o.IsConfirmed {
		return nil, ErrAlreadyConfirmed
	}
	if len(o.Items) == 0 {
		return nil, ErrNoItems
	}
	mo.addSum(o.ClientID, decimal.NewFromFloat(o.TotalAmount))
	o.IsConfirmed = true
	mo.store.ordersByID[id] = o
	o.Items = slices.Clone(o.Items)
	return &o, nil
}

func (mo *MemoryOrders) addSum(clientID int64, delta decimal.Decimal) {
	mo.store.sums[clientID] = mo.store.sums[clientID].Add(delta)
}

// ListByClient суммы подтверждённых заказов, по убыванию суммы
func (mo *MemoryOrders) ListByClient(ctx context.Context) ([]domain.OrdersByClient, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.OrdersByClient, 0, len(mo.store.sums))
	for clientID, sum := range mo.store.sums {
		c, ok := mo.store.clientsByID[clientID]
		if !ok {
			continue
		}
		out = append(out, domain.OrdersByClient{
			ClientID:  clientID,
			Client:    c,
			OrdersSum: sum.Round(2).InexactFloat64(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrdersSum != out[j].OrdersSum {
			return out[i].OrdersSum > out[j].OrdersSum
		}
		return out[i].ClientID < out[j].ClientID
	})
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary.
// Ошибка fn откатывает хранилище к состоянию до транзакции
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	saved := tx.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		tx.store.restore(saved)
		return err
	}
	return nil
}

type storeSnapshot struct {
	nextID   map[string]int64
	clients  map[int64]domain.Client
	products map[int64]domain.Product
	orders   map[int64]domain.Order
	sums     map[int64]decimal.Decimal
}

// snapshot значения в картах только заменяются, поэтому хватает копий карт
func (m *MemoryStore) snapshot() storeSnapshot {
	return storeSnapshot{
		nextID:   maps.Clone(m.nextID),
		clients:  maps.Clone(m.clientsByID),
		products: maps.Clone(m.productByID),
		orders:   maps.Clone(m.ordersByID),
		sums:     maps.Clone(m.sums),
	}
}

func (m *MemoryStore) restore(s storeSnapshot) {
	m.nextID = s.nextID
	m.clientsByID = s.clients
	m.productByID = s.products
	m.ordersByID = s.orders
	m.sums = s.sums
}
