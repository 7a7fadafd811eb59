package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/session"
)

// requireAdmin turns a missing or expired session into a hint at the
// login command.
func requireAdmin(rt *Runtime) error {
	if err := rt.gate().Require(); err != nil {
		if errors.Is(err, session.ErrLoginRequired) {
			return fmt.Errorf("%w; run: storefront admin login <pin>", err)
		}
		return err
	}
	return nil
}

func newAdminCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin session and catalog management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login <pin>",
		Short: "Start a 24 hour admin session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.gate().Login(cmd.Context(), args[0]); err != nil {
				return err
			}
			notice(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.gate().Logout(); err != nil {
				return err
			}
			notice(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether an admin session is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notice(cmd.OutOrStdout(), "session: %s", rt.gate().CheckAccess())
			return nil
		},
	})

	var pinName string
	createPin := &cobra.Command{
		Use:   "create-pin <pin>",
		Short: "Register a new admin PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			u, err := gw.CreateAdminPin(cmd.Context(), args[0], pinName)
			if err != nil {
				return err
			}
			notice(cmd.OutOrStdout(), "Admin PIN created for %s.", u.Name)
			return nil
		},
	}
	createPin.Flags().StringVar(&pinName, "name", "", "display name for the PIN holder")
	cmd.AddCommand(createPin)

	cmd.AddCommand(newAdminProductsCommand(rt, opts))
	cmd.AddCommand(newAdminOrdersCommand(rt, opts))

	return cmd
}

func productFlags(cmd *cobra.Command, f *catalogdomain.Fields) {
	cmd.Flags().StringVar(&f.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&f.Price, "price", "", "unit price (required)")
	cmd.Flags().StringVar(&f.Description, "description", "", "description")
	cmd.Flags().StringVar(&f.Image, "image", "", "image URL")
}

func newAdminProductsCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Add, edit and delete catalog products",
	}

	var addFields catalogdomain.Fields
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(rt); err != nil {
				return err
			}
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			p, err := gw.CreateProduct(cmd.Context(), addFields)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), toProductView(p))
			}
			notice(cmd.OutOrStdout(), "Product added: %s (%s)", p.Name, p.ID)
			return nil
		},
	}
	productFlags(add, &addFields)
	cmd.AddCommand(add)

	var editFields catalogdomain.Fields
	edit := &cobra.Command{
		Use:   "edit <product-id>",
		Short: "Replace a product's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(rt); err != nil {
				return err
			}
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			p, err := gw.UpdateProduct(cmd.Context(), args[0], editFields)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), toProductView(p))
			}
			notice(cmd.OutOrStdout(), "Product updated: %s", p.Name)
			return nil
		},
	}
	productFlags(edit, &editFields)
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(rt); err != nil {
				return err
			}
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			if err := gw.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			notice(cmd.OutOrStdout(), "Product deleted.")
			return nil
		},
	})

	return cmd
}

func newAdminOrdersCommand(rt *Runtime, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Review placed orders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every order, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(rt); err != nil {
				return err
			}
			gw, err := rt.gateway()
			if err != nil {
				return err
			}
			orders, err := gw.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd.OutOrStdout(), opts, orders)
		},
	})

	return cmd
}
