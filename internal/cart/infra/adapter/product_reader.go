package adapter

import (
	"context"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/gateway"
)

type GatewayProductReader struct {
	gw *gateway.Gateway
}

func NewGatewayProductReader(gw *gateway.Gateway) *GatewayProductReader {
	return &GatewayProductReader{gw: gw}
}

func (r *GatewayProductReader) GetProduct(ctx context.Context, productID string) (cartdomain.Product, error) {
	p, err := r.gw.GetProduct(ctx, productID)
	if err != nil {
		return cartdomain.Product{}, err
	}
	return cartdomain.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
	}, nil
}
