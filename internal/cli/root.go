// Package cli is the storefront command line: browse the catalog, keep a
// cart on this machine, check out, and run admin chores behind the PIN
// gate.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand(rt *Runtime) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the shop, manage your cart and place orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newProductsCommand(rt, opts))
	cmd.AddCommand(newCartCommand(rt, opts))
	cmd.AddCommand(newCheckoutCommand(rt, opts))
	cmd.AddCommand(newOrdersCommand(rt, opts))
	cmd.AddCommand(newAdminCommand(rt, opts))
	cmd.AddCommand(newMigrateCommand(rt))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
