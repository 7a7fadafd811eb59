package cli

import (
	"context"
	"log/slog"
	"sync"

	admindomain "github.com/dwikikusuma/storefront/internal/admin/domain"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/gateway"
	"github.com/dwikikusuma/storefront/internal/session"
	"github.com/dwikikusuma/storefront/pkg/clock"
	"github.com/dwikikusuma/storefront/pkg/localstate"
)

// Runtime carries what the commands need. The gateway is opened on first
// use so cart commands work without a database.
type Runtime struct {
	Log   *slog.Logger
	Clock clock.Clock

	CartState    localstate.Storage
	SessionState localstate.Storage

	OpenGateway func() (*gateway.Gateway, error)
	Migrate     func(ctx context.Context) error

	CheckoutConcurrency int

	gwOnce sync.Once
	gw     *gateway.Gateway
	gwErr  error

	cartOnce sync.Once
	cart     *cartapp.Service
}

func (rt *Runtime) gateway() (*gateway.Gateway, error) {
	rt.gwOnce.Do(func() {
		rt.gw, rt.gwErr = rt.OpenGateway()
	})
	return rt.gw, rt.gwErr
}

func (rt *Runtime) cartService() *cartapp.Service {
	rt.cartOnce.Do(func() {
		rt.cart = cartapp.NewService(rt.CartState, lazyProducts{rt}, rt.Log)
	})
	return rt.cart
}

func (rt *Runtime) gate() *session.Gate {
	return session.NewGate(rt.SessionState, lazyVerifier{rt}, rt.Clock, rt.Log)
}

func (rt *Runtime) checkoutService() (*checkoutapp.Service, error) {
	gw, err := rt.gateway()
	if err != nil {
		return nil, err
	}
	return checkoutapp.NewService(
		rt.cartService(),
		gw,
		checkoutadapter.NewGatewayCatalogReader(gw),
		rt.CheckoutConcurrency,
		rt.Log,
	), nil
}

type lazyProducts struct{ rt *Runtime }

func (l lazyProducts) GetProduct(ctx context.Context, id string) (cartdomain.Product, error) {
	gw, err := l.rt.gateway()
	if err != nil {
		return cartdomain.Product{}, err
	}
	return cartadapter.NewGatewayProductReader(gw).GetProduct(ctx, id)
}

type lazyVerifier struct{ rt *Runtime }

func (l lazyVerifier) VerifyPin(ctx context.Context, pin string) (admindomain.AdminUser, error) {
	gw, err := l.rt.gateway()
	if err != nil {
		return admindomain.AdminUser{}, err
	}
	return gw.VerifyPin(ctx, pin)
}
