package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/warehouse/pkg/warehouse"
)

const modulePath = "github.com/mesh-intelligence/warehouse"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the warehouse version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "warehouse v%s\nmodule: %s\n", warehouse.Version, modulePath)
			return nil
		},
	}
}
