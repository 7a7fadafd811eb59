package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type orderView struct {
	ID         string                  `json:"id"`
	FullName   string                  `json:"fullName"`
	Phone      string                  `json:"phone"`
	Address    string                  `json:"address"`
	Email      string                  `json:"email,omitempty"`
	Products   []orderdomain.OrderItem `json:"products"`
	TotalPrice string                  `json:"totalPrice"`
	Status     string                  `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
}

func toOrderView(o orderdomain.Order) orderView {
	return orderView{
		ID:         o.ID,
		FullName:   o.FullName,
		Phone:      o.Phone,
		Address:    o.Address,
		Email:      o.Email,
		Products:   o.Items,
		TotalPrice: o.TotalPrice.StringFixed(2),
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}

func newOrdersCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Look up placed orders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			o, err := gw.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOrder(cmd.OutOrStdout(), opts, o)
		},
	})

	return cmd
}

func printOrder(w io.Writer, opts *RootOptions, o orderdomain.Order) error {
	if opts.Format == "json" {
		return printJSON(w, toOrderView(o))
	}

	fmt.Fprintf(w, "Order %s (%s)\n", o.ID, o.Status)
	fmt.Fprintf(w, "Placed: %s\n", o.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(w, "Ship to: %s, %s, %s\n", o.FullName, o.Address, o.Phone)
	if o.Email != "" {
		fmt.Fprintf(w, "Email: %s\n", o.Email)
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", it.ProductID, it.Name, money(it.Price), it.Quantity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Total: %s\n", money(o.TotalPrice))
	return nil
}

func printOrders(w io.Writer, opts *RootOptions, orders []orderdomain.Order) error {
	if opts.Format == "json" {
		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, toOrderView(o))
		}
		return printJSON(w, map[string]any{"orders": views})
	}

	if len(orders) == 0 {
		notice(w, "No orders yet.")
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tPLACED\tCUSTOMER\tITEMS\tTOTAL\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			o.ID, o.CreatedAt.Format(time.DateTime), o.FullName, len(o.Items), money(o.TotalPrice), o.Status)
	}
	return tw.Flush()
}
