package cli

import (
	"github.com/spf13/cobra"

	"github.com/izzyreal/raincast/internal/config"
	"github.com/izzyreal/raincast/internal/server"
)

func newServerCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the web service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPathOrEnv(*configPath))
			if err != nil {
				return err
			}
			return server.Run(cmd.Context(), cfg)
		},
	}
}
