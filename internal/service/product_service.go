package service

import (
	"context"
	"log/slog"

	"orderdesk/internal/domain"
	"orderdesk/internal/repository"
	"orderdesk/internal/state"
)

// ProductService действия над товарами
type ProductService struct {
	repo repository.ProductRepository
	log  *slog.Logger
}

func NewProductService(repo repository.ProductRepository, log *slog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) Create(ctx context.Context, st *state.State, in domain.ProductInput) (*domain.Product, error) {
	p, err := s.repo.Create(ctx, in)
	if err == nil && p == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "create", "product", err)
	}
	st.AppendProduct(*p)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, st *state.State, id int64, in domain.ProductInput) (*domain.Product, error) {
	p, err := s.repo.Update(ctx, id, in)
	if err == nil && p == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		return nil, fail(ctx, s.log, "update", "product", err)
	}
	st.ReplaceProduct(*p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, st *state.State, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(ctx, s.log, "delete", "product", err)
	}
	st.RemoveProduct(id)
	return nil
}
