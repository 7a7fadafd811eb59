package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// CreateOrder persists a pending order in a single insert. Nothing is
// written when a required field is missing.
func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.Email = strings.TrimSpace(req.Email)

	switch {
	case req.FullName == "":
		return domain.Order{}, apperr.Invalid("fullName", "is required")
	case req.Phone == "":
		return domain.Order{}, apperr.Invalid("phone", "is required")
	case req.Address == "":
		return domain.Order{}, apperr.Invalid("address", "is required")
	case len(req.Items) == 0:
		return domain.Order{}, apperr.Invalid("products", "is required")
	case !req.TotalPrice.IsPositive():
		return domain.Order{}, apperr.Invalid("totalPrice", "must be greater than zero")
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return domain.Order{}, apperr.Invalid(fmt.Sprintf("products[%d].id", i), "is required")
		}
		if item.Quantity <= 0 {
			return domain.Order{}, apperr.Invalid(fmt.Sprintf("products[%d].quantity", i), "must be positive")
		}
		if item.Price.IsNegative() {
			return domain.Order{}, apperr.Invalid(fmt.Sprintf("products[%d].price", i), "cannot be negative")
		}
		items = append(items, item)
	}

	order := domain.Order{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Address:    req.Address,
		Email:      req.Email,
		Items:      items,
		TotalPrice: req.TotalPrice,
		Status:     domain.StatusPending,
	}

	return s.repo.Create(ctx, order)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, apperr.Invalid("id", "is required")
	}
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

// ListOrders returns every order, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}
