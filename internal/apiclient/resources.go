package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/repository"
)

// API набор клиентов ресурсов поверх общего Transport
type API struct {
	Clients  *Clients
	Products *Products
	Orders   *Orders
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *API {
	t := NewTransport(baseURL, timeout, log)
	return &API{
		Clients:  &Clients{t: t},
		Products: &Products{t: t},
		Orders:   &Orders{t: t},
	}
}

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}

// Clients /clients
type Clients struct{ t *Transport }

var _ repository.ClientRepository = (*Clients)(nil)

func NewClients(t *Transport) *Clients { return &Clients{t: t} }

func (c *Clients) List(ctx context.Context) ([]domain.Client, error) {
	return fetchList[domain.Client](ctx, c.t, "/clients")
}

func (c *Clients) Create(ctx context.Context, in domain.ClientInput) (*domain.Client, error) {
	return fetchOne[domain.Client](ctx, c.t, http.MethodPost, "/clients", in)
}

func (c *Clients) Update(ctx context.Context, id int64, in domain.ClientInput) (*domain.Client, error) {
	return fetchOne[domain.Client](ctx, c.t, http.MethodPut, itemPath("/clients", id), in)
}

func (c *Clients) Delete(ctx context.Context, id int64) error {
	_, err := c.t.Request(ctx, http.MethodDelete, itemPath("/clients", id), nil)
	return err
}

// Products /products
type Products struct{ t *Transport }

var _ repository.ProductRepository = (*Products)(nil)

func NewProducts(t *Transport) *Products { return &Products{t: t} }

func (p *Products) List(ctx context.Context) ([]domain.Product, error) {
	return fetchList[domain.Product](ctx, p.t, "/products")
}

func (p *Products) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	return fetchOne[domain.Product](ctx, p.t, http.MethodPost, "/products", in)
}

func (p *Products) Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	return fetchOne[domain.Product](ctx, p.t, http.MethodPut, itemPath("/products", id), in)
}

func (p *Products) Delete(ctx context.Context, id int64) error {
	_, err := p.t.Request(ctx, http.MethodDelete, itemPath("/products", id), nil)
	return err
}

// Orders /orders и /orders-by-client
type Orders struct{ t *Transport }

var (
	_ repository.OrderRepository          = (*Orders)(nil)
	_ repository.OrdersByClientRepository = (*Orders)(nil)
)

func NewOrders(t *Transport) *Orders { return &Orders{t: t} }

func (o *Orders) List(ctx context.Context) ([]domain.Order, error) {
	return fetchList[domain.Order](ctx, o.t, "/orders")
}

func (o *Orders) Create(ctx context.Context, in domain.OrderInput) (*domain.Order, error) {
	return fetchOne[domain.Order](ctx, o.t, http.MethodPost, "/orders", in)
}

func (o *Orders) Update(ctx context.Context, id int64, in domain.OrderInput) (*domain.Order, error) {
	return fetchOne[domain.Order](ctx, o.t, http.MethodPut, itemPath("/orders", id), in)
}

func (o *Orders) Delete(ctx context.Context, id int64) error {
	_, err := o.t.Request(ctx, http.MethodDelete, itemPath("/orders", id), nil)
	return err
}

// Confirm переводит заказ в подтверждённый; в ответе сохранённый заказ
func (o *Orders) Confirm(ctx context.Context, id int64) (*domain.Order, error) {
	return fetchOne[domain.Order](ctx, o.t, http.MethodPost, itemPath("/orders", id)+"/confirm", nil)
}

func (o *Orders) ListByClient(ctx context.Context) ([]domain.OrdersByClient, error) {
	return fetchList[domain.OrdersByClient](ctx, o.t, "/orders-by-client")
}
