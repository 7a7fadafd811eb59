package domain

import (
	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

// BuyerInfo is the contact and shipping data collected at checkout.
// Email is optional.
type BuyerInfo struct {
	FullName string
	Phone    string
	Address  string
	Email    string
}

type Receipt struct {
	OrderID string
	Totals  cartdomain.Totals
	Units   int
}

// LineReview compares a cart line with the live catalog entry.
type LineReview struct {
	ProductID    string
	Name         string
	Quantity     int
	CartPrice    decimal.Decimal
	CurrentPrice decimal.Decimal
	Missing      bool
}

func (l LineReview) PriceChanged() bool {
	return !l.Missing && !l.CartPrice.Equal(l.CurrentPrice)
}

type Review struct {
	Lines  []LineReview
	Totals cartdomain.Totals
}

// Stale reports whether any line was repriced or removed from the
// catalog since it was added.
func (r Review) Stale() bool {
	for _, l := range r.Lines {
		if l.Missing || l.PriceChanged() {
			return true
		}
	}
	return false
}
