package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/storefront/internal/admin/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

const (
	MinPinLength     = 4
	defaultAdminName = "Admin"
)

type Service struct {
	repo AdminRepo
	log  *slog.Logger
}

func NewService(repo AdminRepo, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log}
}

// VerifyPin looks up an exact PIN match. Every failure, including a
// store error, is reported as ErrInvalidCredential so callers cannot
// tell a wrong PIN from a missing record.
func (s *Service) VerifyPin(ctx context.Context, pin string) (domain.AdminUser, error) {
	if pin == "" {
		return domain.AdminUser{}, apperr.ErrInvalidCredential
	}

	admin, err := s.repo.GetByPin(ctx, pin)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.log.Error("verify pin lookup failed", slog.Any("err", err))
		}
		return domain.AdminUser{}, apperr.ErrInvalidCredential
	}
	return admin, nil
}

func (s *Service) CreatePin(ctx context.Context, pin, name string) (domain.AdminUser, error) {
	if len(pin) < MinPinLength {
		return domain.AdminUser{}, apperr.Invalid("pin", "must be at least 4 digits")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultAdminName
	}
	return s.repo.Create(ctx, pin, name)
}
