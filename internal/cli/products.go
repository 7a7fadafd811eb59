package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type productView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func toProductView(p catalogdomain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		Image:       p.Image,
	}
}

func newProductsCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every product, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			products, err := gw.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), opts, products, "")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			p, err := gw.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return printJSON(out, toProductView(p))
			}
			fmt.Fprintf(out, "%s  %s\n", p.Name, money(p.Price))
			if p.Description != "" {
				fmt.Fprintln(out, p.Description)
			}
			if p.Image != "" {
				fmt.Fprintf(out, "image: %s\n", p.Image)
			}
			fmt.Fprintf(out, "id: %s\n", p.ID)
			return nil
		},
	})

	var (
		limit  int
		cursor string
	)
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by name, one page at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			products, next, err := gw.SearchProducts(cmd.Context(), args[0], limit, cursor)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), opts, products, next)
		},
	}
	search.Flags().IntVar(&limit, "limit", 20, "page size")
	search.Flags().StringVar(&cursor, "cursor", "", "continue after this product id")
	cmd.AddCommand(search)

	return cmd
}

func printProducts(w io.Writer, opts *RootOptions, products []catalogdomain.Product, next string) error {
	if opts.Format == "json" {
		views := make([]productView, 0, len(products))
		for _, p := range products {
			views = append(views, toProductView(p))
		}
		return printJSON(w, map[string]any{"products": views, "next_cursor": next})
	}

	if len(products) == 0 {
		notice(w, "No products found.")
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, money(p.Price))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if next != "" {
		notice(w, "more: --cursor %s", next)
	}
	return nil
}
