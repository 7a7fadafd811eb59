package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/order/infra/postgres/orderdb"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type OrderRepo struct {
	q *orderdb.Queries
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{q: orderdb.New(db)}
}

// Create writes the order and its item snapshot in one INSERT.
func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order items: %w", err)
	}

	row, err := r.q.CreateOrder(ctx, orderdb.CreateOrderParams{
		FullName:   order.FullName,
		Phone:      order.Phone,
		Address:    order.Address,
		Email:      order.Email,
		Products:   items,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	return toDomain(row)
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, apperr.ErrNotFound
	}

	row, err := r.q.GetOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, apperr.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return toDomain(row)
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func toDomain(row orderdb.Order) (domain.Order, error) {
	items, err := decodeItems(row.Products)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", row.ID, err)
	}
	return domain.Order{
		ID:         row.ID.String(),
		FullName:   row.FullName,
		Phone:      row.Phone,
		Address:    row.Address,
		Email:      row.Email,
		Items:      items,
		TotalPrice: row.TotalPrice,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func decodeItems(raw []byte) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return items, nil
}
