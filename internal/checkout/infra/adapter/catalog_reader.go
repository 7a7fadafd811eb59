package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/gateway"
)

type GatewayCatalogReader struct {
	gw *gateway.Gateway
}

func NewGatewayCatalogReader(gw *gateway.Gateway) *GatewayCatalogReader {
	return &GatewayCatalogReader{gw: gw}
}

func (r *GatewayCatalogReader) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.gw.GetProduct(ctx, productID)
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}, nil
}
