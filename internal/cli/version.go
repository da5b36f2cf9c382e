package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/izzyreal/raincast/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "raincast %s (api %d)\n", version.Current(), version.APIVersion)
			return err
		},
	}
}
