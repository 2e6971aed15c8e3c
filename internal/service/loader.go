package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"orderdesk/internal/domain"
	"orderdesk/internal/repository"
	"orderdesk/internal/state"
)

// OrderStore заказы вместе с агрегатом по клиентам
type OrderStore interface {
	repository.OrderRepository
	repository.OrdersByClientRepository
}

// Loader начальная загрузка всех коллекций
type Loader struct {
	clients  repository.ClientRepository
	products repository.ProductRepository
	orders   OrderStore
	log      *slog.Logger
}

func NewLoader(clients repository.ClientRepository, products repository.ProductRepository, orders OrderStore, log *slog.Logger) *Loader {
	return &Loader{clients: clients, products: products, orders: orders, log: log}
}

// Load запрашивает четыре списка параллельно. Состояние меняется только
// если успешны все запросы; первая ошибка отменяет остальные.
func (l *Loader) Load(ctx context.Context, st *state.State) error {
	var (
		clients  []domain.Client
		products []domain.Product
		orders   []domain.Order
		byClient []domain.OrdersByClient
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = l.clients.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = l.products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = l.orders.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		byClient, err = l.orders.ListByClient(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		ae := fail(ctx, l.log, "load", "data", err)
		ae.Hint = "Please try again later."
		st.SetLoadError(ae.Message())
		return ae
	}

	st.SetAll(clients, products, orders, byClient)
	l.log.InfoContext(ctx, "data_loaded",
		slog.Int("clients", len(clients)),
		slog.Int("products", len(products)),
		slog.Int("orders", len(orders)),
	)
	return nil
}
