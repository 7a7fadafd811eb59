package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID         string
	FullName   string
	Phone      string
	Address    string
	Email      string
	Items      []OrderItem
	TotalPrice decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

// OrderItem is a snapshot of a cart line at checkout time. It is stored
// with the order so later catalog edits never change historic orders.
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type CreateOrderRequest struct {
	FullName   string
	Phone      string
	Address    string
	Email      string
	Items      []OrderItem
	TotalPrice decimal.Decimal
}
