package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newHTTPServerCmd(app *application) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start HTTP server",
		Long:  `Serve the expense API under /api/v1 until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if host != "" {
				app.cfg.Server.Host = host
			}
			if port != 0 {
				app.cfg.Server.Port = port
				if err := app.cfg.Server.Validate(); err != nil {
					return err
				}
			}

			// no terminal status line in server mode
			app.status = nil
			deps, err := app.dependencies(cmd.Context())
			if err != nil {
				return err
			}
			return startHTTPServer(deps)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides http_server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides http_server.port)")
	return cmd
}

func newRouter(deps *Dependencies) *chi.Mux {
	router := chi.NewRouter()
	base := transport.NewBaseHandler(deps.Logger)

	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:   rest.NewHealthHandler(deps.Storage, deps.Config.Storage.Driver),
		Category: category.NewHandler(base),
		Expense:  expense.NewHandler(base, deps.Expenses),
		Budget:   budget.NewHandler(base, deps.Budgets),
		Report:   report.NewHandler(base, deps.Expenses),
	}, deps.Logger)

	return router
}

func startHTTPServer(deps *Dependencies) error {
	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	deps.Logger.Info("Starting HTTP server", "address", server.Addr, "driver", deps.Config.Storage.Driver)
	fmt.Fprintf(os.Stderr, "Listening on http://%s/api/v1\n", server.Addr)

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.Bus.Wait()
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("Server stopped")
	return nil
}
