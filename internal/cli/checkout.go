package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type receiptView struct {
	OrderID  string `json:"order_id"`
	Units    int    `json:"units"`
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
	// Warnings lists cart lines that were repriced or removed from the
	// catalog since they were added.
	Warnings []string `json:"warnings"`
}

func newCheckoutCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	var (
		buyer      domain.BuyerInfo
		skipReview bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.checkoutService()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			warnings := []string{}
			if !skipReview {
				review, err := svc.Review(cmd.Context())
				if err != nil {
					return err
				}
				warnings = reviewWarnings(review)
			}

			receipt, err := svc.Submit(cmd.Context(), buyer)
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return printJSON(out, receiptView{
					OrderID:  receipt.OrderID,
					Units:    receipt.Units,
					Subtotal: receipt.Totals.Subtotal.StringFixed(2),
					Tax:      receipt.Totals.Tax.StringFixed(2),
					Total:    receipt.Totals.Total.StringFixed(2),
					Warnings: warnings,
				})
			}
			for _, w := range warnings {
				notice(out, "warning: %s", w)
			}
			notice(out, "Order placed successfully! Order ID: %s", receipt.OrderID)
			fmt.Fprintf(out, "Total charged: %s\n", money(receipt.Totals.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&buyer.FullName, "name", "", "full name (required)")
	cmd.Flags().StringVar(&buyer.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&buyer.Address, "address", "", "shipping address (required)")
	cmd.Flags().StringVar(&buyer.Email, "email", "", "email address")
	cmd.Flags().BoolVar(&skipReview, "no-review", false, "skip re-checking prices against the catalog")

	return cmd
}

func reviewWarnings(r domain.Review) []string {
	warnings := []string{}
	for _, l := range r.Lines {
		switch {
		case l.Missing:
			warnings = append(warnings, fmt.Sprintf("%s is no longer in the catalog", l.Name))
		case l.PriceChanged():
			warnings = append(warnings, fmt.Sprintf("%s now costs %s (cart has %s)", l.Name, money(l.CurrentPrice), money(l.CartPrice)))
		}
	}
	return warnings
}
