package service

import (
	"context"
	"log/slog"

	"orderdesk/internal/domain"
	"orderdesk/internal/repository"
	"orderdesk/internal/state"
)

// OrderService действия над заказами. Подтверждение не проверяется
// на клиенте: запрос уходит даже для уже подтверждённого заказа.
type OrderService struct {
	orders repository.OrderRepository
	log    *slog.Logger
}

func NewOrderService(orders repository.OrderRepository, log *slog.Logger) *OrderService {
	return &OrderService{orders: orders, log: log}
}

// Create сумма заказа берётся из ответа сервера, локально не пересчитывается
func (s *OrderService) Create(ctx context.Context, st *state.State, in domain.OrderInput) (*domain.Order, error) {
	o, err := s.orders.Create(ctx, in)
	if err == nil && o == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "create", "order", err)
	}
	st.AppendOrder(*o)
	return o, nil
}

func (s *OrderService) Update(ctx context.Context, st *state.State, id int64, in domain.OrderInput) (*domain.Order, error) {
	o, err := s.orders.Update(ctx, id, in)
	if err == nil && o == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "update", "order", err)
	}
	st.ReplaceOrder(*o)
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, st *state.State, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fail(ctx, s.log, "delete", "order", err)
	}
	st.RemoveOrder(id)
	return nil
}

// Confirm заменяет заказ в состоянии тем, что вернул сервер
func (s *OrderService) Confirm(ctx context.Context, st *state.State, id int64) (*domain.Order, error) {
	o, err := s.orders.Confirm(ctx, id)
	if err == nil && o == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "confirm", "order", err)
	}
	st.ReplaceOrder(*o)
	return o, nil
}
