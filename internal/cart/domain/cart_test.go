package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	keyboard = Product{ID: "p-1", Name: "Keyboard", Price: dec("25.50"), Image: "kb.png"}
	mouse    = Product{ID: "p-2", Name: "Mouse", Price: dec("10")}
)

func TestAddItem(t *testing.T) {
	t.Run("new product appends a line", func(t *testing.T) {
		c := AddItem(Cart{}, keyboard, 2)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, "p-1", c.Lines[0].ProductID)
		assert.Equal(t, "kb.png", c.Lines[0].Image)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("same product merges into one line", func(t *testing.T) {
		c := AddItem(AddItem(Cart{}, keyboard, 2), keyboard, 3)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 5, c.Lines[0].Quantity)
	})

	t.Run("merge keeps the first snapshot", func(t *testing.T) {
		repriced := keyboard
		repriced.Price = dec("99")
		c := AddItem(AddItem(Cart{}, keyboard, 1), repriced, 1)
		assert.True(t, c.Lines[0].Price.Equal(dec("25.50")))
	})

	t.Run("non-positive quantity adds one unit", func(t *testing.T) {
		c := AddItem(Cart{}, mouse, 0)
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		orig := AddItem(Cart{}, keyboard, 1)
		_ = AddItem(orig, keyboard, 4)
		_ = AddItem(orig, mouse, 1)
		require.Len(t, orig.Lines, 1)
		assert.Equal(t, 1, orig.Lines[0].Quantity)
	})
}

func TestSetQuantity(t *testing.T) {
	base := AddItem(AddItem(Cart{}, keyboard, 1), mouse, 1)

	c := SetQuantity(base, "p-2", 7)
	l, ok := c.Find("p-2")
	require.True(t, ok)
	assert.Equal(t, 7, l.Quantity)

	assert.Equal(t, RemoveItem(base, "p-1"), SetQuantity(base, "p-1", 0))
	assert.Equal(t, RemoveItem(base, "p-1"), SetQuantity(base, "p-1", -3))

	unchanged := SetQuantity(base, "nope", 4)
	assert.Equal(t, base.Lines, unchanged.Lines)
}

func TestRemoveItem(t *testing.T) {
	base := AddItem(AddItem(Cart{}, keyboard, 1), mouse, 1)

	c := RemoveItem(base, "p-1")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p-2", c.Lines[0].ProductID)
	assert.Len(t, base.Lines, 2)

	assert.Len(t, RemoveItem(base, "nope").Lines, 2)
}

func TestClear(t *testing.T) {
	c := Clear(AddItem(Cart{}, keyboard, 3))
	assert.True(t, c.IsEmpty())
	assert.True(t, ComputeTotals(c).Total.IsZero())
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		cart     Cart
		subtotal string
		tax      string
		total    string
	}{
		{"empty", Cart{}, "0", "0", "0"},
		{"single unit", AddItem(Cart{}, keyboard, 1), "25.50", "2.04", "27.54"},
		{"round hundred", AddItem(Cart{}, Product{ID: "x", Price: dec("50")}, 2), "100", "8", "108"},
		{"mixed", AddItem(AddItem(Cart{}, keyboard, 2), mouse, 3), "81", "6.48", "87.48"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.cart)
			assert.True(t, got.Subtotal.Equal(dec(tc.subtotal)), "subtotal %s", got.Subtotal)
			assert.True(t, got.Tax.Equal(dec(tc.tax)), "tax %s", got.Tax)
			assert.True(t, got.Total.Equal(dec(tc.total)), "total %s", got.Total)
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax)))
		})
	}
}

func TestSubtotalIsLinearInQuantity(t *testing.T) {
	for q := 1; q <= 20; q++ {
		c := AddItem(Cart{}, keyboard, q)
		want := keyboard.Price.Mul(decimal.NewFromInt(int64(q)))
		assert.True(t, ComputeTotals(c).Subtotal.Equal(want), "q=%d", q)
	}
}

func TestCountAndUnits(t *testing.T) {
	c := AddItem(AddItem(Cart{}, keyboard, 2), mouse, 3)
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 5, c.Units())
}

func TestCodecRoundTrip(t *testing.T) {
	c := AddItem(AddItem(Cart{}, keyboard, 2), mouse, 1)

	raw, err := Encode(c)
	require.NoError(t, err)

	got, ok := Decode(raw)
	require.True(t, ok)
	require.Len(t, got.Lines, 2)
	for i := range c.Lines {
		assert.Equal(t, c.Lines[i].ProductID, got.Lines[i].ProductID)
		assert.Equal(t, c.Lines[i].Quantity, got.Lines[i].Quantity)
		assert.True(t, c.Lines[i].Price.Equal(got.Lines[i].Price))
	}
	assert.True(t, ComputeTotals(c).Total.Equal(ComputeTotals(got).Total))
}

func TestEncodeEmpty(t *testing.T) {
	raw, err := Encode(Cart{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestDecode(t *testing.T) {
	t.Run("absent content is an empty cart", func(t *testing.T) {
		c, ok := Decode(nil)
		assert.True(t, ok)
		assert.True(t, c.IsEmpty())
	})

	malformed := map[string]string{
		"not json":          `{oops`,
		"object not array":  `{"id":"p-1"}`,
		"missing id":        `[{"name":"x","price":"1","quantity":1}]`,
		"negative quantity": `[{"id":"p-1","price":"1","quantity":-2}]`,
		"negative price":    `[{"id":"p-1","price":"-1","quantity":1}]`,
	}
	for name, raw := range malformed {
		t.Run(name, func(t *testing.T) {
			c, ok := Decode([]byte(raw))
			assert.False(t, ok)
			assert.True(t, c.IsEmpty())
		})
	}

	t.Run("missing quantity counts as one", func(t *testing.T) {
		c, ok := Decode([]byte(`[{"id":"p-1","name":"Keyboard","price":"25.5"}]`))
		require.True(t, ok)
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("numeric prices are accepted", func(t *testing.T) {
		c, ok := Decode([]byte(`[{"id":"p-1","price":25.5,"quantity":2}]`))
		require.True(t, ok)
		assert.True(t, ComputeTotals(c).Subtotal.Equal(dec("51")))
	})

	t.Run("duplicate ids merge", func(t *testing.T) {
		c, ok := Decode([]byte(`[{"id":"p-1","price":"1","quantity":2},{"id":"p-1","price":"1","quantity":3}]`))
		require.True(t, ok)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 5, c.Lines[0].Quantity)
	})
}

func TestQuantityIsCapped(t *testing.T) {
	t.Run("merge past the cap clamps instead of wrapping", func(t *testing.T) {
		c := AddItem(AddItem(Cart{}, keyboard, math.MaxInt), keyboard, 1)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, MaxQuantity, c.Lines[0].Quantity)

		c = AddItem(AddItem(Cart{}, keyboard, MaxQuantity-1), keyboard, 5)
		assert.Equal(t, MaxQuantity, c.Lines[0].Quantity)
	})

	t.Run("set quantity clamps", func(t *testing.T) {
		c := SetQuantity(AddItem(Cart{}, keyboard, 1), "p-1", math.MaxInt)
		assert.Equal(t, MaxQuantity, c.Lines[0].Quantity)
	})

	t.Run("capped cart survives a reload", func(t *testing.T) {
		c := AddItem(AddItem(Cart{}, keyboard, math.MaxInt), keyboard, math.MaxInt)
		raw, err := Encode(c)
		require.NoError(t, err)

		got, ok := Decode(raw)
		require.True(t, ok)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, MaxQuantity, got.Lines[0].Quantity)
	})

	t.Run("decode clamps and merges without overflow", func(t *testing.T) {
		raw := `[{"id":"p-1","price":"1","quantity":9223372036854775807},{"id":"p-1","price":"1","quantity":9223372036854775807}]`
		got, ok := Decode([]byte(raw))
		require.True(t, ok)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, MaxQuantity, got.Lines[0].Quantity)
	})
}
