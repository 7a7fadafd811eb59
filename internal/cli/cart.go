package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

type cartLineView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type cartView struct {
	Lines    []cartLineView `json:"lines"`
	Count    int            `json:"count"`
	Units    int            `json:"units"`
	Subtotal string         `json:"subtotal"`
	Tax      string         `json:"tax"`
	Total    string         `json:"total"`
}

func toCartView(c cartdomain.Cart) cartView {
	t := cartdomain.ComputeTotals(c)
	v := cartView{
		Lines:    make([]cartLineView, 0, len(c.Lines)),
		Count:    c.Count(),
		Units:    c.Units(),
		Subtotal: t.Subtotal.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
	for _, l := range c.Lines {
		v.Lines = append(v.Lines, cartLineView{
			ID:       l.ProductID,
			Name:     l.Name,
			Price:    l.Price.StringFixed(2),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().StringFixed(2),
		})
	}
	return v
}

func newCartCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart kept on this machine",
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.cartService().AddItemToCart(cmd.Context(), args[0], qty)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return printCart(cmd.OutOrStdout(), opts, c)
			}
			l, _ := c.Find(args[0])
			notice(cmd.OutOrStdout(), "Added %s to cart (%d in cart).", l.Name, l.Quantity)
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "qty", "q", 1, "quantity to add")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a whole number: %q", args[1])
			}
			c, err := rt.cartService().SetItemQuantity(args[0], n)
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), opts, c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.cartService().RemoveItemFromCart(args[0])
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), opts, c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.cartService().ClearCart(); err != nil {
				return err
			}
			notice(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show cart contents and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.cartService().GetCart()
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), opts, c)
		},
	})

	var interval time.Duration
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Show the cart and reprint it whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchCart(cmd.Context(), cmd.OutOrStdout(), rt.cartService(), opts, interval)
		},
	}
	watch.Flags().DurationVar(&interval, "interval", time.Second, "how often to look for changes made elsewhere")
	cmd.AddCommand(watch)

	return cmd
}

// watchCart prints the cart, then reprints it on every change signal
// until ctx is cancelled.
func watchCart(ctx context.Context, w io.Writer, svc *cartapp.Service, opts *RootOptions, interval time.Duration) error {
	changes, cancel := svc.Subscribe()
	defer cancel()

	show := func() error {
		c, err := svc.GetCart()
		if err != nil {
			return err
		}
		return printCart(w, opts, c)
	}
	if err := show(); err != nil {
		return err
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	watchErr := make(chan error, 1)
	go func() { watchErr <- svc.Watch(ctx, interval) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watchErr:
			return err
		case <-changes:
			if err := show(); err != nil {
				return err
			}
		}
	}
}

func printCart(w io.Writer, opts *RootOptions, c cartdomain.Cart) error {
	v := toCartView(c)
	if opts.Format == "json" {
		return printJSON(w, v)
	}

	if c.IsEmpty() {
		notice(w, "Your cart is empty.")
		return nil
	}

	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, l := range v.Lines {
		fmt.Fprintf(tw, "%s\t%s\t$%s\t%d\t$%s\n", l.ID, l.Name, l.Price, l.Quantity, l.Subtotal)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cart (%d)\n", v.Count)
	fmt.Fprintf(w, "Subtotal: $%s\n", v.Subtotal)
	fmt.Fprintf(w, "Tax (8%%): $%s\n", v.Tax)
	fmt.Fprintf(w, "Total: $%s\n", v.Total)
	return nil
}
