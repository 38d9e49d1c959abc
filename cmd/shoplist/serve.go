package main

import (
	"context"

	"github.com/spf13/cobra"

	"shoplist/internal/core"
	"shoplist/internal/httpapi"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shopping list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, rec, err := newMetricsRegistry()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr(), core.WithMetrics(rec))
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}

			srv := httpapi.NewServer(addr, httpapi.RouterConfig{
				Handler:  httpapi.NewHandler(a.svc, a.catalog),
				Gatherer: reg,
				Logger:   a.logger,
			})
			a.logger.Info("listening", "addr", addr, "driver", a.store.Driver(), "recipes", a.catalog.Len())
			runErr := srv.Run(cmd.Context())
			a.logger.Info("shutting down")
			if err := a.close(context.WithoutCancel(cmd.Context())); err != nil {
				a.logger.Error("final save failed", "error", err)
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config http.addr)")
	return cmd
}
