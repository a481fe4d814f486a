package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vsinha/bakeplan/pkg/interfaces/api"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				address = opts.cfg.HTTP.Address
			}
			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			b, err := opts.openDatabaseBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			server := &http.Server{
				Addr:    address,
				Handler: api.NewRouter(b.service, opts.cfg.Planning, opts.logger),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				opts.logger.Info("http server listening", "address", address)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			opts.logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&address, "addr", "", "Listen address (default: http.address from config)")
	return cmd
}
