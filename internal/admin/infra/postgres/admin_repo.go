package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/admin/domain"
	"github.com/dwikikusuma/storefront/internal/admin/infra/postgres/admindb"
	"github.com/dwikikusuma/storefront/pkg/apperr"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

type AdminRepo struct {
	q *admindb.Queries
}

func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{q: admindb.New(db)}
}

func (r *AdminRepo) GetByPin(ctx context.Context, pin string) (domain.AdminUser, error) {
	row, err := r.q.GetAdminByPin(ctx, pin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AdminUser{}, apperr.ErrNotFound
	}
	if err != nil {
		return domain.AdminUser{}, err
	}
	return toDomain(row), nil
}

func (r *AdminRepo) Create(ctx context.Context, pin, name string) (domain.AdminUser, error) {
	row, err := r.q.CreateAdmin(ctx, admindb.CreateAdminParams{Pin: pin, Name: name})
	if postgres.IsUniqueViolation(err) {
		return domain.AdminUser{}, apperr.ErrPinExists
	}
	if err != nil {
		return domain.AdminUser{}, err
	}
	return toDomain(row), nil
}

func toDomain(row admindb.AdminUser) domain.AdminUser {
	return domain.AdminUser{
		ID:        row.ID.String(),
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}
