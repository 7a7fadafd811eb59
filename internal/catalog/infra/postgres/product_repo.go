package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/postgres/catalogdb"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

const (
	tableProducts   = "products"
	colID           = "id"
	colName         = "name"
	colPrice        = "price"
	colDescription  = "description"
	colImage        = "image"
	colCreatedAt    = "created_at"
	colUpdatedAt    = "updated_at"
	dialectPostgres = "postgres"
)

type ProductRepo struct {
	q  *catalogdb.Queries
	db *sqlx.DB
}

// NewProductRepo wraps db. driverName is the database/sql driver db was
// opened with; sqlx needs it to pick the bind style.
func NewProductRepo(db *sql.DB, driverName string) *ProductRepo {
	return &ProductRepo{
		q:  catalogdb.New(db),
		db: sqlx.NewDb(db, driverName),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row, err := r.q.CreateProduct(ctx, catalogdb.CreateProductParams{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
	})
	if err != nil {
		return domain.Product{}, err
	}
	return toDomain(row), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, apperr.ErrNotFound
	}

	product, err := r.q.GetProduct(ctx, prodID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}

	return toDomain(product), nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	prodID, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, apperr.ErrNotFound
	}

	row, err := r.q.UpdateProduct(ctx, catalogdb.UpdateProductParams{
		ID:          prodID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		UpdatedAt:   p.UpdatedAt,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return toDomain(row), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return apperr.ErrNotFound
	}

	n, err := r.q.DeleteProduct(ctx, prodID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// productRow is the sqlx scan target for the dynamic search query.
type productRow struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Price       decimal.Decimal `db:"price"`
	Description string          `db:"description"`
	Image       string          `db:"image"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// List searches product names case-insensitively, paging by id. The
// cursor is the id of the last product of the previous page.
func (r *ProductRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	var cur uuid.NullUUID
	if strings.TrimSpace(cursor) != "" {
		uid, err := uuid.Parse(strings.TrimSpace(cursor))
		if err != nil {
			return nil, "", apperr.Invalid("cursor", "is not a valid product id")
		}
		cur = uuid.NullUUID{UUID: uid, Valid: true}
	}

	sqlQuery, args, err := buildListQuery(strings.TrimSpace(query), limit, cur)
	if err != nil {
		return nil, "", err
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, "", err
	}

	out := make([]domain.Product, 0, len(rows))
	var nextCursor string

	for _, row := range rows {
		out = append(out, domain.Product{
			ID:          row.ID.String(),
			Name:        row.Name,
			Price:       row.Price,
			Description: row.Description,
			Image:       row.Image,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
		nextCursor = row.ID.String()
	}

	if len(out) < limit {
		nextCursor = ""
	}

	return out, nextCursor, nil
}

func buildListQuery(query string, limit int, cursor uuid.NullUUID) (string, []interface{}, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableProducts).
		Prepared(true).
		Select(colID, colName, colPrice, colDescription, colImage, colCreatedAt, colUpdatedAt).
		Order(goqu.I(colID).Asc()).
		Limit(uint(limit))

	if query != "" {
		stmt = stmt.Where(goqu.C(colName).ILike("%" + escapeLike(query) + "%"))
	}
	if cursor.Valid {
		stmt = stmt.Where(goqu.C(colID).Gt(cursor.UUID.String()))
	}

	return stmt.ToSQL()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toDomain(row catalogdb.Product) domain.Product {
	return domain.Product{
		ID:          row.ID.String(),
		Name:        row.Name,
		Price:       row.Price,
		Description: row.Description,
		Image:       row.Image,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
