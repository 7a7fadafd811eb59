// Package gateway is the single boundary through which catalog, order and
// admin records are read and written. It performs required-field checks
// only; every other failure is reported as an apperr.GatewayError
// carrying the store's message.
//
// The gateway does not authorize callers. Mutating operations trust the
// client-side session gate, which is advisory.
package gateway

import (
	"context"

	admin "github.com/dwikikusuma/storefront/internal/admin/app"
	admindomain "github.com/dwikikusuma/storefront/internal/admin/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	order "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

type Gateway struct {
	catalog *catalog.Service
	orders  *order.Service
	admins  *admin.Service
}

func New(catalogSvc *catalog.Service, orderSvc *order.Service, adminSvc *admin.Service) *Gateway {
	return &Gateway{
		catalog: catalogSvc,
		orders:  orderSvc,
		admins:  adminSvc,
	}
}

func (g *Gateway) ListProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	products, err := g.catalog.ListAllProducts(ctx)
	return products, apperr.Gateway("list products", err)
}

// SearchProducts pages through products whose name contains query.
func (g *Gateway) SearchProducts(ctx context.Context, query string, limit int, cursor string) ([]catalogdomain.Product, string, error) {
	products, next, err := g.catalog.ListProducts(ctx, query, limit, cursor)
	return products, next, apperr.Gateway("search products", err)
}

func (g *Gateway) GetProduct(ctx context.Context, id string) (catalogdomain.Product, error) {
	p, err := g.catalog.GetProduct(ctx, id)
	return p, apperr.Gateway("get product", err)
}

func (g *Gateway) CreateProduct(ctx context.Context, f catalogdomain.Fields) (catalogdomain.Product, error) {
	p, err := g.catalog.CreateProduct(ctx, f)
	return p, apperr.Gateway("create product", err)
}

func (g *Gateway) UpdateProduct(ctx context.Context, id string, f catalogdomain.Fields) (catalogdomain.Product, error) {
	p, err := g.catalog.UpdateProduct(ctx, id, f)
	return p, apperr.Gateway("update product", err)
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	return apperr.Gateway("delete product", g.catalog.DeleteProduct(ctx, id))
}

func (g *Gateway) CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error) {
	o, err := g.orders.CreateOrder(ctx, req)
	return o, apperr.Gateway("create order", err)
}

func (g *Gateway) GetOrder(ctx context.Context, id string) (orderdomain.Order, error) {
	o, err := g.orders.GetOrder(ctx, id)
	return o, apperr.Gateway("get order", err)
}

func (g *Gateway) ListOrders(ctx context.Context) ([]orderdomain.Order, error) {
	orders, err := g.orders.ListOrders(ctx)
	return orders, apperr.Gateway("list orders", err)
}

func (g *Gateway) VerifyPin(ctx context.Context, pin string) (admindomain.AdminUser, error) {
	a, err := g.admins.VerifyPin(ctx, pin)
	return a, apperr.Gateway("verify pin", err)
}

func (g *Gateway) CreateAdminPin(ctx context.Context, pin, name string) (admindomain.AdminUser, error) {
	a, err := g.admins.CreatePin(ctx, pin, name)
	return a, apperr.Gateway("create admin pin", err)
}
