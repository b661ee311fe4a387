package main

//
//  @title           volseason API
//  @version         1.0
//  @description     Intraday volume seasonality: percentage of daily volume per session interval.
//  @termsOfService  https://github.com/guttosm/volseason
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/volseason
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        volume
//  @tag.description Volume distribution tables and raw bars
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/volseason/config"
	_ "github.com/guttosm/volseason/docs" // swagger docs
	"github.com/guttosm/volseason/internal/app"
	"github.com/guttosm/volseason/internal/logger"
	"github.com/spf13/cobra"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., cache connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// newRootCmd builds the volseason command tree.
//
// Commands:
//   - serve:  Starts the REST API and HTML view.
//   - report: Fetches, aggregates and prints one table to stdout.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "volseason",
		Short:         "Intraday volume seasonality tables from Polygon 30-minute bars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadConfig(); err != nil {
				return err
			}
			logger.Init(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)
			return nil
		},
	}
	root.AddCommand(newServeCmd(), newReportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = config.AppConfig.Server.Port
			}

			router, cleanup, err := app.InitializeApp()
			if err != nil {
				return err
			}

			server := startServer(router, port)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default SERVER_PORT)")
	return cmd
}

// main is the entry point of the volseason application.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.L().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
