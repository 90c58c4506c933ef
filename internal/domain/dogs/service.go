package dogs

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("new dogs need name and weight")
	ErrNotFound     = errors.New("dog not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate aplica la regla "truthy": nombre vacío o peso cero cuentan como faltantes.
// Un peso 0 legítimo también se rechaza; es comportamiento documentado de la API.
func (in Fields) Validate() error {
	if in.Name == "" || in.Weight == 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) FindAll(ctx context.Context) ([]Dog, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Dog{}
	}
	return items, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (Dog, error) {
	if id <= 0 {
		return Dog{}, ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Fields) (Dog, error) {
	if err := in.Validate(); err != nil {
		return Dog{}, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in Fields) (Dog, error) {
	if err := in.Validate(); err != nil {
		return Dog{}, err
	}
	if id <= 0 {
		return Dog{}, ErrNotFound
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) (Dog, error) {
	if id <= 0 {
		return Dog{}, ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
