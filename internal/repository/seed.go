package repository

import (
	"context"

	"orderdesk/internal/domain"
)

// TxManager абстракция транзакции. Для in-memory: глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TxManager = (*MemoryTx)(nil)

// Seed заполняет хранилище демонстрационными данными одной транзакцией
func Seed(ctx context.Context, store *MemoryStore) error {
	clients, products, orders := store.Clients(), store.Products(), store.Orders()
	return NewMemoryTx(store).WithTransaction(ctx, func(ctx context.Context) error {
		acme, err := clients.Create(ctx, domain.ClientInput{Name: "Acme", INN: "7701234567"})
		if err != nil {
			return err
		}
		if _, err := clients.Create(ctx, domain.ClientInput{Name: "Globex"}); err != nil {
			return err
		}
		bread, err := products.Create(ctx, domain.ProductInput{Name: "Bread", Unit: "pcs"})
		if err != nil {
			return err
		}
		flour, err := products.Create(ctx, domain.ProductInput{Name: "Flour", Unit: "kg"})
		if err != nil {
			return err
		}
		first, err := orders.Create(ctx, domain.OrderInput{
			ClientID: acme.ID,
			Number:   "A-0001",
			Items: []domain.OrderItemInput{
				{ProductID: bread.ID, Quantity: 2, Price: 3.5},
				{ProductID: flour.ID, Quantity: 1, Price: 10},
			},
		})
		if err != nil {
			return err
		}
		if _, err := orders.Confirm(ctx, first.ID); err != nil {
			return err
		}
		_, err = orders.Create(ctx, domain.OrderInput{
			ClientID: acme.ID,
			Number:   "A-0002",
			Items:    []domain.OrderItemInput{{ProductID: flour.ID, Quantity: 5, Price: 9.9}},
		})
		return err
	})
}
