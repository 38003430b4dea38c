package cli

import (
	"github.com/spf13/cobra"

	"github.com/hctsai/roomcal/internal/web"
)

// serveCommand creates the serve command for running the web UI.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload → preview → download web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			addr := listen
			if addr == "" {
				addr = cfg.ResolveListen()
			}

			runner := c.newRunner(cmd.Context(), cfg, false)
			server := web.NewServer(runner, c.Logger, cfg.ResolveTheme())

			printInfo("Serving on http://%s", addr)
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")

	return cmd
}
