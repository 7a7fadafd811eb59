package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// ProductReader resolves a product id to the snapshot stored in a cart line.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}
