package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"blogposts/app/config"
	"blogposts/app/metrics"
	"blogposts/app/repositories"
	"blogposts/app/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the posts API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAppServer(cmd.Context(), c.cfg)
		},
	}
}

// RunAppServer opens the store and serves the API until SIGINT or SIGTERM.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Errorf("close database: %s", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	return Serve(ctx, cfg, repo, ln)
}

// Serve runs the HTTP server on ln until ctx is done, then shuts it down,
// waiting at most cfg.ShutdownTimeout for in-flight requests.
func Serve(ctx context.Context, cfg *config.Config, repo *repositories.Repository, ln net.Listener) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("blogposts", "server", reg)

	srv := &http.Server{
		Handler:      routes.SetupRoutes(repo, metricsManager, reg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof(" > server listening on: [%s]", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Infof("shutting down server, timeout %s", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-serveErr; err != nil {
		return err
	}
	log.Infoln("server shutdown complete")
	return nil
}
