package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields is the writable part of a Product. Price is kept as the raw
// submitted text and coerced to a decimal on write.
type Fields struct {
	Name        string
	Price       string
	Description string
	Image       string
}
