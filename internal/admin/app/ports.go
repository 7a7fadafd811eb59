package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/admin/domain"
)

type AdminRepo interface {
	GetByPin(ctx context.Context, pin string) (domain.AdminUser, error)
	Create(ctx context.Context, pin, name string) (domain.AdminUser, error)
}
