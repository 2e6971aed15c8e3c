package service

import (
	"context"
	"log/slog"

	"orderdesk/internal/domain"
	"orderdesk/internal/repository"
	"orderdesk/internal/state"
)

// ClientService действия над клиентами: вызов API, затем правка состояния
// ответом сервера
type ClientService struct {
	repo repository.ClientRepository
	log  *slog.Logger
}

func NewClientService(repo repository.ClientRepository, log *slog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

func (s *ClientService) Create(ctx context.Context, st *state.State, in domain.ClientInput) (*domain.Client, error) {
	c, err := s.repo.Create(ctx, in)
	if err == nil && c == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "create", "client", err)
	}
	st.AppendClient(*c)
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, st *state.State, id int64, in domain.ClientInput) (*domain.Client, error) {
	c, err := s.repo.Update(ctx, id, in)
	if err == nil && c == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "update", "client", err)
	}
	st.ReplaceClient(*c)
	return c, nil
}

// Delete удаляет клиента только после явного подтверждения
func (s *ClientService) Delete(ctx context.Context, st *state.State, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(ctx, s.log, "delete", "client", err)
	}
	st.RemoveClient(id)
	return nil
}
