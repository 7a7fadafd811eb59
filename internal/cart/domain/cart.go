// Package domain holds the cart engine: pure operations over a Cart value.
// No operation mutates its argument; each returns a new Cart.
package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the subtotal of every cart.
var TaxRate = decimal.RequireFromString("0.08")

// MaxQuantity caps the units of a single line. Larger quantities,
// including merged ones, are clamped to it.
const MaxQuantity = 9999

func clampQuantity(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// mergeQuantity adds b units to a without overflowing past MaxQuantity.
func mergeQuantity(a, b int) int {
	if b > MaxQuantity-a {
		return MaxQuantity
	}
	return a + b
}

// Product is what the cart needs to know about a catalog entry at the
// moment it is added.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

// Line is one product entry in a cart. Name, Price and Image are a
// snapshot taken when the product was first added.
type Line struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of lines with at most one line per product.
type Cart struct {
	Lines []Line
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Count is the number of distinct lines.
func (c Cart) Count() int { return len(c.Lines) }

// Units is the sum of all quantities.
func (c Cart) Units() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Find returns the line for productID.
func (c Cart) Find(productID string) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

func (c Cart) index(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// AddItem merges qty units of p into the cart. An existing line keeps its
// original snapshot and has its quantity increased by qty; otherwise a new
// line is appended. qty below 1 counts as 1; the line never exceeds
// MaxQuantity.
func AddItem(c Cart, p Product, qty int) Cart {
	if qty < 1 {
		qty = 1
	}
	qty = clampQuantity(qty)
	out := c.clone()
	if i := out.index(p.ID); i >= 0 {
		out.Lines[i].Quantity = mergeQuantity(out.Lines[i].Quantity, qty)
		return out
	}
	out.Lines = append(out.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  qty,
	})
	return out
}

// SetQuantity sets the line's quantity to exactly qty. Below 1 the line is
// removed, above MaxQuantity it is clamped. Unknown products are ignored.
func SetQuantity(c Cart, productID string, qty int) Cart {
	if qty < 1 {
		return RemoveItem(c, productID)
	}
	out := c.clone()
	if i := out.index(productID); i >= 0 {
		out.Lines[i].Quantity = clampQuantity(qty)
	}
	return out
}

// RemoveItem drops the line for productID if present.
func RemoveItem(c Cart, productID string) Cart {
	out := Cart{Lines: make([]Line, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.ProductID != productID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

func Clear(Cart) Cart {
	return Cart{Lines: []Line{}}
}

// ComputeTotals returns subtotal, tax at TaxRate rounded to cents, and
// their sum.
func ComputeTotals(c Cart) Totals {
	subtotal := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
