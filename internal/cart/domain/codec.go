package domain

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders the cart as a JSON array of lines.
func Encode(c Cart) ([]byte, error) {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// Decode parses stored cart content. Unreadable content yields an empty
// cart and ok=false; it is never an error. A line without a quantity
// counts as one unit, repeated product ids are merged, and quantities
// are clamped to MaxQuantity.
func Decode(raw []byte) (c Cart, ok bool) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Cart{Lines: []Line{}}, true
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return Cart{Lines: []Line{}}, false
	}

	out := Cart{Lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" || l.Quantity < 0 || l.Price.IsNegative() {
			return Cart{Lines: []Line{}}, false
		}
		if l.Quantity == 0 {
			l.Quantity = 1
		}
		l.Quantity = clampQuantity(l.Quantity)
		if i := out.index(l.ProductID); i >= 0 {
			out.Lines[i].Quantity = mergeQuantity(out.Lines[i].Quantity, l.Quantity)
			continue
		}
		out.Lines = append(out.Lines, l)
	}
	return out, true
}
