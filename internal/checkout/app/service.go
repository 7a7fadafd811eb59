package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

type CartStore interface {
	GetCart() (cartdomain.Cart, error)
	ClearCart() error
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error)
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

type Service struct {
	Cart    CartStore
	Orders  OrderWriter
	Catalog CatalogReader

	maxConcurrent int
	log           *slog.Logger
}

func NewService(cart CartStore, orders OrderWriter, catalog CatalogReader, maxConcurrent int, log *slog.Logger) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		Cart:          cart,
		Orders:        orders,
		Catalog:       catalog,
		maxConcurrent: maxConcurrent,
		log:           log,
	}
}

var ErrEmptyCart = apperr.Invalid("cart", "is empty")

// Submit turns the current cart into a pending order. The cart is cleared
// only after the order write succeeds; on any earlier failure it is left
// exactly as it was.
func (s *Service) Submit(ctx context.Context, buyer domain.BuyerInfo) (domain.Receipt, error) {
	buyer, err := validateBuyer(buyer)
	if err != nil {
		return domain.Receipt{}, err
	}

	cart, err := s.Cart.GetCart()
	if err != nil {
		return domain.Receipt{}, err
	}
	if cart.IsEmpty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	totals := cartdomain.ComputeTotals(cart)
	if !totals.Total.IsPositive() {
		return domain.Receipt{}, apperr.Invalid("totalPrice", "must be greater than zero")
	}

	items := make([]orderdomain.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, orderdomain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}

	order, err := s.Orders.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		FullName:   buyer.FullName,
		Phone:      buyer.Phone,
		Address:    buyer.Address,
		Email:      buyer.Email,
		Items:      items,
		TotalPrice: totals.Total,
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("place order: %w", err)
	}

	if err := s.Cart.ClearCart(); err != nil {
		s.log.Warn("order placed but cart not cleared",
			slog.String("order_id", order.ID),
			slog.String("err", err.Error()),
		)
	}

	s.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(items)),
		slog.String("total", totals.Total.StringFixed(2)),
	)

	return domain.Receipt{
		OrderID: order.ID,
		Totals:  totals,
		Units:   cart.Units(),
	}, nil
}

func validateBuyer(b domain.BuyerInfo) (domain.BuyerInfo, error) {
	b.FullName = strings.TrimSpace(b.FullName)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Address = strings.TrimSpace(b.Address)
	b.Email = strings.TrimSpace(b.Email)

	switch {
	case b.FullName == "":
		return b, apperr.Invalid("fullName", "is required")
	case b.Phone == "":
		return b, apperr.Invalid("phone", "is required")
	case b.Address == "":
		return b, apperr.Invalid("address", "is required")
	}
	return b, nil
}

// Review re-reads every cart line from the catalog and reports which ones
// were repriced or deleted since they were added. It never changes the
// cart.
func (s *Service) Review(ctx context.Context) (domain.Review, error) {
	cart, err := s.Cart.GetCart()
	if err != nil {
		return domain.Review{}, err
	}

	lines := make([]domain.LineReview, len(cart.Lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cart.Lines {
		g.Go(func() error {
			it := cart.Lines[idx]
			line := domain.LineReview{
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				CartPrice: it.Price,
			}

			product, err := s.Catalog.GetProduct(ctx, it.ProductID)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				line.Missing = true
			case err != nil:
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			default:
				line.CurrentPrice = product.Price
			}

			lines[idx] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Review{}, err
	}

	return domain.Review{
		Lines:  lines,
		Totals: cartdomain.ComputeTotals(cart),
	}, nil
}
