package service

import (
	"log/slog"

	"orderdesk/internal/repository"
)

// Services все действия консоли
type Services struct {
	Clients  *ClientService
	Products *ProductService
	Orders   *OrderService
	Loader   *Loader
}

func NewServices(clients repository.ClientRepository, products repository.ProductRepository, orders OrderStore, log *slog.Logger) *Services {
	if log == nil {
		log = slog.Default()
	}
	return &Services{
		Clients:  NewClientService(clients, log),
		Products: NewProductService(products, log),
		Orders:   NewOrderService(orders, log),
		Loader:   NewLoader(clients, products, orders, log),
	}
}
