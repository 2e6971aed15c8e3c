package domain

import "time"

// Client клиент; ИНН необязателен
type Client struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
	INN  string `json:"inn"`
}

// Product товар с единицей измерения
type Product struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
	Unit string `json:"unit" validate:"required"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ID         int64   `json:"id,omitempty"`
	OrderID    int64   `json:"order_id,omitempty"`
	ProductID  int64   `json:"product_id" validate:"gt=0"`
	Quantity   float64 `json:"quantity" validate:"gte=0"`
	Price      float64 `json:"price" validate:"gte=0"`
	LineAmount float64 `json:"line_amount,omitempty"`
}

// Order сущность заказа. ClientID может ссылаться на клиента,
// которого нет в локальном снимке.
type Order struct {
	ID          int64       `json:"id" validate:"gt=0"`
	Number      string      `json:"number" validate:"required"`
	ClientID    int64       `json:"client_id"`
	Date        time.Time   `json:"date"`
	Items       []OrderItem `json:"items" validate:"dive"`
	TotalAmount float64     `json:"total_amount"`
	IsConfirmed bool        `json:"is_confirmed"`
}

// OrdersByClient сумма подтверждённых заказов клиента
type OrdersByClient struct {
	ClientID  int64   `json:"client_id" validate:"gt=0"`
	Client    Client  `json:"client" validate:"-"`
	OrdersSum float64 `json:"orders_sum"`
}

// ClientInput тело запроса создания/обновления клиента
type ClientInput struct {
	Name string `json:"name"`
	INN  string `json:"inn"`
}

// ProductInput тело запроса создания/обновления товара
type ProductInput struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// OrderItemInput позиция в запросе создания заказа
type OrderItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderInput тело запроса создания/обновления заказа
type OrderInput struct {
	ClientID int64            `json:"client_id"`
	Number   string           `json:"number"`
	Items    []OrderItemInput `json:"items"`
}
