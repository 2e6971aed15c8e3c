package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput запрос не прошёл проверку на стороне хранилища
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyConfirmed повторное подтверждение заказа
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	// ErrConfirmed подтверждённый заказ нельзя редактировать
	ErrConfirmed = errors.New("confirmed order cannot be edited")
	// ErrNoItems заказ без позиций
	ErrNoItems = errors.New("order has no items")
	// ErrDuplicate нарушение уникальности (номер заказа)
	ErrDuplicate = errors.New("duplicate")
	// ErrInUse на сущность ссылаются заказы
	ErrInUse = errors.New("entity is referenced by orders")
)

// ClientRepository операции над клиентами
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, in domain.ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id int64, in domain.ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository операции над товарами
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository операции над заказами
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, in domain.OrderInput) (*domain.Order, error)
	Update(ctx context.Context, id int64, in domain.OrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	Confirm(ctx context.Context, id int64) (*domain.Order, error)
}

// OrdersByClientRepository агрегированное представление
type OrdersByClientRepository interface {
	ListByClient(ctx context.Context) ([]domain.OrdersByClient, error)
}
