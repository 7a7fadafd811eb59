package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newMigrateCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.Migrate == nil {
				return errors.New("migrate: no database configured")
			}
			if err := rt.Migrate(cmd.Context()); err != nil {
				return err
			}
			notice(cmd.OutOrStdout(), "Schema applied.")
			return nil
		},
	}
}
