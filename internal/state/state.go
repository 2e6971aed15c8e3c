// Package state holds the console's in-memory snapshot of the remote
// collections. The snapshot is replaced or patched only from server answers.
package state

import (
	"slices"
	"sync"

	"orderdesk/internal/domain"
)

// Section видимый раздел консоли
type Section string

const (
	SectionClients        Section = "clients"
	SectionProducts       Section = "products"
	SectionOrders         Section = "orders"
	SectionOrdersByClient Section = "orders-by-client"
)

// Sections в порядке навигации
var Sections = []Section{SectionClients, SectionProducts, SectionOrders, SectionOrdersByClient}

// ParseSection возвращает раздел по имени; неизвестное имя даёт false
func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// Snapshot копия состояния для отрисовки
type Snapshot struct {
	Clients        []domain.Client
	Products       []domain.Product
	Orders         []domain.Order
	OrdersByClient []domain.OrdersByClient
	Section        Section
	Loaded         bool
	LoadError      string
}

// State изменяемое состояние консоли. Владелец: сервер, действия
// получают его явным параметром.
type State struct {
	mu             sync.RWMutex
	clients        []domain.Client
	products       []domain.Product
	orders         []domain.Order
	ordersByClient []domain.OrdersByClient
	section        Section
	loaded         bool
	loadErr        string
}

func New() *State {
	return &State{
		clients:        []domain.Client{},
		products:       []domain.Product{},
		orders:         []domain.Order{},
		ordersByClient: []domain.OrdersByClient{},
		section:        SectionClients,
	}
}

// SetAll заменяет все коллекции результатом начальной загрузки
func (s *State) SetAll(clients []domain.Client, products []domain.Product, orders []domain.Order, byClient []domain.OrdersByClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = slices.Clone(clients)
	s.products = slices.Clone(products)
	s.orders = cloneOrders(orders)
	s.ordersByClient = slices.Clone(byClient)
	s.loaded = true
	s.loadErr = ""
}

// SetLoadError запоминает сообщение о неудачной загрузке, коллекции не трогает
func (s *State) SetLoadError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = msg
}

func (s *State) SetSection(sec Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section = sec
}

func (s *State) Section() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.section
}

func (s *State) AppendClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
}

// ReplaceClient заменяет клиента на месте; для отсутствующего id no-op
func (s *State) ReplaceClient(c domain.Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return replaceByID(s.clients, c, func(x domain.Client) int64 { return x.ID })
}

func (s *State) RemoveClient(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = slices.DeleteFunc(s.clients, func(c domain.Client) bool { return c.ID == id })
}

func (s *State) AppendProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

func (s *State) ReplaceProduct(p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return replaceByID(s.products, p, func(x domain.Product) int64 { return x.ID })
}

func (s *State) RemoveProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.DeleteFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}

func (s *State) AppendOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.Items = slices.Clone(o.Items)
	s.orders = append(s.orders, o)
}

func (s *State) ReplaceOrder(o domain.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.Items = slices.Clone(o.Items)
	return replaceByID(s.orders, o, func(x domain.Order) int64 { return x.ID })
}

func (s *State) RemoveOrder(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = slices.DeleteFunc(s.orders, func(o domain.Order) bool { return o.ID == id })
}

// Client ищет клиента в снимке
func (s *State) Client(id int64) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == id })
	if i < 0 {
		return domain.Client{}, false
	}
	return s.clients[i], true
}

func (s *State) Product(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *State) Order(id int64) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return domain.Order{}, false
	}
	o := s.orders[i]
	o.Items = slices.Clone(o.Items)
	return o, true
}

// Snapshot возвращает глубокую копию коллекций
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Clients:        slices.Clone(s.clients),
		Products:       slices.Clone(s.products),
		Orders:         cloneOrders(s.orders),
		OrdersByClient: slices.Clone(s.ordersByClient),
		Section:        s.section,
		Loaded:         s.loaded,
		LoadError:      s.loadErr,
	}
}

func replaceByID[T any](list []T, v T, id func(T) int64) bool {
	for i := range list {
		if id(list[i]) == id(v) {
			list[i] = v
			return true
		}
	}
	return false
}

func cloneOrders(in []domain.Order) []domain.Order {
	out := make([]domain.Order, len(in))
	for i, o := range in {
		o.Items = slices.Clone(o.Items)
		out[i] = o
	}
	return out
}
