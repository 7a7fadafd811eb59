package app

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
	"github.com/dwikikusuma/storefront/pkg/clock"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo  ProductRepo
	clock clock.Clock
}

func NewService(repo ProductRepo, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real()
	}
	return &Service{
		repo:  repo,
		clock: clk,
	}
}

func (s *Service) CreateProduct(ctx context.Context, f domain.Fields) (domain.Product, error) {
	p, err := productFromFields(f)
	if err != nil {
		return domain.Product{}, err
	}
	return s.repo.Create(ctx, p)
}

// UpdateProduct replaces the writable fields of id and stamps UpdatedAt.
func (s *Service) UpdateProduct(ctx context.Context, id string, f domain.Fields) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, apperr.Invalid("id", "is required")
	}

	p, err := productFromFields(f)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id
	p.UpdatedAt = s.clock.Now().UTC()

	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Invalid("id", "is required")
	}
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, apperr.Invalid("id", "is required")
	}
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

// ListAllProducts returns the whole catalog, newest first.
func (s *Service) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.List(ctx, query, limit, cursor)
}

func productFromFields(f domain.Fields) (domain.Product, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return domain.Product{}, apperr.Invalid("name", "is required")
	}

	price, err := ParsePrice(f.Price)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		Name:        name,
		Price:       price,
		Description: strings.TrimSpace(f.Description),
		Image:       strings.TrimSpace(f.Image),
	}, nil
}

// ParsePrice coerces submitted price text to a positive decimal rounded
// to cents.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, apperr.Invalid("price", "is required")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperr.Invalid("price", "must be a number")
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return decimal.Decimal{}, apperr.Invalid("price", "must be greater than zero")
	}
	return price, nil
}
