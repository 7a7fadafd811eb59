// Package gatewaytest provides an in-memory Gateway for tests of the
// packages that sit on top of it.
package gatewaytest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	admin "github.com/dwikikusuma/storefront/internal/admin/app"
	admindomain "github.com/dwikikusuma/storefront/internal/admin/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/gateway"
	order "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
	"github.com/dwikikusuma/storefront/pkg/clock"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

// Store holds every table in memory. Set Fail to make every repository
// call return that error.
type Store struct {
	mu       sync.Mutex
	clock    clock.Clock
	products map[string]catalogdomain.Product
	orders   map[string]orderdomain.Order
	admins   map[string]admindomain.AdminUser
	Fail     error
}

func NewStore(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.Real()
	}
	return &Store{
		clock:    clk,
		products: make(map[string]catalogdomain.Product),
		orders:   make(map[string]orderdomain.Order),
		admins:   make(map[string]admindomain.AdminUser),
	}
}

// Gateway returns a Gateway backed by s.
func (s *Store) Gateway() *gateway.Gateway {
	return gateway.New(
		catalog.NewService(productRepo{s}, s.clock),
		order.NewService(orderRepo{s}),
		admin.NewService(adminRepo{s}, logger.Discard()),
	)
}

func (s *Store) SetFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fail = err
}

func (s *Store) Orders() []orderdomain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]orderdomain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}

type productRepo struct{ s *Store }

func (r productRepo) Create(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return catalogdomain.Product{}, r.s.Fail
	}
	p.ID = uuid.NewString()
	p.CreatedAt = r.s.clock.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = p
	return p, nil
}

func (r productRepo) Get(ctx context.Context, id string) (catalogdomain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return catalogdomain.Product{}, r.s.Fail
	}
	p, ok := r.s.products[id]
	if !ok {
		return catalogdomain.Product{}, apperr.ErrNotFound
	}
	return p, nil
}

func (r productRepo) Update(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return catalogdomain.Product{}, r.s.Fail
	}
	old, ok := r.s.products[p.ID]
	if !ok {
		return catalogdomain.Product{}, apperr.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	r.s.products[p.ID] = p
	return p, nil
}

func (r productRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return r.s.Fail
	}
	if _, ok := r.s.products[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r productRepo) ListAll(ctx context.Context) ([]catalogdomain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]catalogdomain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r productRepo) List(ctx context.Context, query string, limit int, cursor string) ([]catalogdomain.Product, string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return nil, "", r.s.Fail
	}
	var matched []catalogdomain.Product
	for _, p := range r.s.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			continue
		}
		if cursor != "" && p.ID <= cursor {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if len(matched) > limit {
		matched = matched[:limit]
	}
	next := ""
	if len(matched) == limit && limit > 0 {
		next = matched[len(matched)-1].ID
	}
	return matched, next, nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return orderdomain.Order{}, r.s.Fail
	}
	o.ID = uuid.NewString()
	o.CreatedAt = r.s.clock.Now().UTC()
	r.s.orders[o.ID] = o
	return o, nil
}

func (r orderRepo) Get(ctx context.Context, id string) (orderdomain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return orderdomain.Order{}, r.s.Fail
	}
	o, ok := r.s.orders[id]
	if !ok {
		return orderdomain.Order{}, apperr.ErrNotFound
	}
	return o, nil
}

func (r orderRepo) List(ctx context.Context) ([]orderdomain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]orderdomain.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type adminRepo struct{ s *Store }

func (r adminRepo) GetByPin(ctx context.Context, pin string) (admindomain.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return admindomain.AdminUser{}, r.s.Fail
	}
	a, ok := r.s.admins[pin]
	if !ok {
		return admindomain.AdminUser{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r adminRepo) Create(ctx context.Context, pin, name string) (admindomain.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return admindomain.AdminUser{}, r.s.Fail
	}
	if _, ok := r.s.admins[pin]; ok {
		return admindomain.AdminUser{}, apperr.ErrPinExists
	}
	a := admindomain.AdminUser{ID: uuid.NewString(), Name: name, CreatedAt: r.s.clock.Now().UTC()}
	r.s.admins[pin] = a
	return a, nil
}
