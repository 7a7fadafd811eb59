package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/localstate"
	"github.com/dwikikusuma/storefront/pkg/notify"
)

// StorageKey is the durable slot holding the encoded cart.
const StorageKey = "cart"

// Service owns the persisted cart. Every mutation reads the stored cart,
// applies a pure domain operation, writes the result back and only then
// tells subscribers that the cart changed.
type Service struct {
	mu       sync.Mutex
	state    localstate.Storage
	products ProductReader
	changes  *notify.Broadcaster
	log      *slog.Logger
}

func NewService(state localstate.Storage, products ProductReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		state:    state,
		products: products,
		changes:  notify.NewBroadcaster(),
		log:      log,
	}
}

// GetCart returns the stored cart. Unreadable content is reported in the
// log and treated as an empty cart.
func (s *Service) GetCart() (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) load() (domain.Cart, error) {
	raw, _, err := s.state.Get(StorageKey)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("read cart: %w", err)
	}
	c, ok := domain.Decode(raw)
	if !ok {
		s.log.Warn("discarding unreadable cart", slog.Int("bytes", len(raw)))
	}
	return c, nil
}

func (s *Service) update(apply func(domain.Cart) domain.Cart) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return domain.Cart{}, err
	}
	next := apply(current)

	raw, err := domain.Encode(next)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("encode cart: %w", err)
	}
	if err := s.state.Set(StorageKey, raw); err != nil {
		return domain.Cart{}, fmt.Errorf("write cart: %w", err)
	}
	s.changes.Notify()
	return next, nil
}

// AddItemToCart looks the product up and adds qty units of it.
func (s *Service) AddItemToCart(ctx context.Context, productID string, qty int) (domain.Cart, error) {
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.AddItem(p, qty)
}

func (s *Service) AddItem(p domain.Product, qty int) (domain.Cart, error) {
	return s.update(func(c domain.Cart) domain.Cart {
		return domain.AddItem(c, p, qty)
	})
}

func (s *Service) SetItemQuantity(productID string, qty int) (domain.Cart, error) {
	return s.update(func(c domain.Cart) domain.Cart {
		return domain.SetQuantity(c, productID, qty)
	})
}

func (s *Service) RemoveItemFromCart(productID string) (domain.Cart, error) {
	return s.update(func(c domain.Cart) domain.Cart {
		return domain.RemoveItem(c, productID)
	})
}

func (s *Service) ClearCart() error {
	_, err := s.update(domain.Clear)
	return err
}

func (s *Service) Totals() (domain.Totals, error) {
	c, err := s.GetCart()
	if err != nil {
		return domain.Totals{}, err
	}
	return domain.ComputeTotals(c), nil
}

// Subscribe returns a channel that receives a signal after each persisted
// change, including changes picked up by Watch. Receivers re-read the
// cart with GetCart.
func (s *Service) Subscribe() (<-chan struct{}, func()) {
	return s.changes.Subscribe()
}

// Watch polls storage every interval and signals subscribers when the
// stored cart was changed by another process. It returns nil once ctx is
// done.
func (s *Service) Watch(ctx context.Context, interval time.Duration) error {
	last, err := s.stored()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current, err := s.stored()
			if err != nil {
				return err
			}
			if !bytes.Equal(current, last) {
				last = current
				s.changes.Notify()
			}
		}
	}
}

func (s *Service) stored() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, _, err := s.state.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	return raw, nil
}
