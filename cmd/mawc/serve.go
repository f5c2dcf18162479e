package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mawc/internal/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			table, err := loadRateTable(cmd, settings)
			if err != nil {
				return err
			}

			addr := stringFlag(cmd, "addr", settings.Addr)
			handler := api.NewHandler(newEngine(cmd), table)
			server := api.NewServer(addr, api.NewRouter(handler, api.DefaultRouterOptions()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Server starting on %s (%d rate periods)", addr, len(table.Rates))
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

			log.Println("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Println("Server stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from settings)")
	cmd.Flags().Bool("debug", false, "Log rate lookups and applied rules")
	addRatesFlag(cmd)
	return cmd
}
