package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/logging"
	transport "github.com/finkit/finproj/internal/transport/http"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Start the JSON API:

  GET  /api/health
  GET  /api/instruments
  POST /api/compound
  POST /api/retirement
  POST /api/fixed-income/compare
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.app.Server
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer logging.Sync()

			logger := logging.With(zap.String("component", "http"))
			srv := transport.NewServer(cfg, opts.engine(opts.app.Rules), opts.loc, logger, Version)
			if err := srv.Run(ctx); err != nil {
				logging.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides the configured port)")
	return cmd
}
