package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/loomcraft/vbed"
	httpAdapter "github.com/loomcraft/vbed/internal/adapters/http"
	"github.com/loomcraft/vbed/internal/compiler"
	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/observability"
)

// serveCmd exposes one machine over the JSON API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts a machine and exposes its state and operations as a JSON API, with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("pattern", "", "Pattern file whose machine section configures the served machine")
}

func serve(cmd *cobra.Command) error {
	logger := newLogger(cmd)

	cfg := machine.DefaultConfig()
	if path, _ := cmd.Flags().GetString("pattern"); path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		pattern, err := compiler.NewParser().Parse(src)
		if err != nil {
			return err
		}
		cfg = pattern.Config
	}

	sim, err := vbed.New(cfg, vbed.WithLogger(logger))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	collector := observability.NewCollector(registry)

	r := chi.NewRouter()
	r.Mount("/", httpAdapter.NewHandler(sim.Machine(), logger, collector.Hooks()))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	port, _ := cmd.Flags().GetString("port")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("Starting vbed server on %s (%d needles per bed)\n", srv.Addr, cfg.Width)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Println("vbed server stopped gracefully")
	}
	return nil
}
