package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/TilePlan/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr, mediaRoot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP draw API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.ListenAddr = addr
			}
			if cmd.Flags().Changed("media-root") {
				cfg.MediaRoot = mediaRoot
			}
			return server.New(cfg, c.Logger).ListenAndServe(cmd.Context(), cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8888", "listen address")
	cmd.Flags().StringVar(&mediaRoot, "media-root", "media", "directory for rendered plans")
	return cmd
}
