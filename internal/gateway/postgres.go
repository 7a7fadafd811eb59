package gateway

import (
	"database/sql"
	"log/slog"

	admin "github.com/dwikikusuma/storefront/internal/admin/app"
	adminpg "github.com/dwikikusuma/storefront/internal/admin/infra/postgres"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	order "github.com/dwikikusuma/storefront/internal/order/app"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"
	"github.com/dwikikusuma/storefront/pkg/clock"
)

// NewPostgres wires the gateway over the generated query packages.
// driverName is the database/sql driver db was opened with.
func NewPostgres(db *sql.DB, driverName string, clk clock.Clock, log *slog.Logger) *Gateway {
	return New(
		catalog.NewService(catalogpg.NewProductRepo(db, driverName), clk),
		order.NewService(orderpg.NewOrderRepo(db)),
		admin.NewService(adminpg.NewAdminRepo(db), log),
	)
}
