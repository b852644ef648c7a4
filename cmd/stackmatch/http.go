package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/api"
)

var flagHTTPAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the HTTP+JSON API",
	Long: `Serve games over HTTP. Games live in memory; finished games are
recorded in the database under the player named in the request.

Endpoints:
  GET    /healthz
  GET    /api/levels
  GET    /api/powerups
  POST   /api/games                     {"mode", "level", "daily", "seed", "player"}
  GET    /api/games/{id}
  DELETE /api/games/{id}
  POST   /api/games/{id}/select         {"tileId"}
  POST   /api/games/{id}/powerups/{kind}
  POST   /api/games/{id}/restart
  POST   /api/games/{id}/next

Examples:
  stackmatch http
  stackmatch http --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	Run:  runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runHTTP(_ *cobra.Command, _ []string) {
	logger := newLogger("stackmatch-http")
	cfg := loadConfig(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	addr := firstNonEmpty(flagHTTPAddr, cfg.Server.HTTPAddr, ":8080")
	srv := api.NewServer(store, sessionOptions(cfg, logger), logger).NewHTTPServer(addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Printf("Serving the stackmatch API on %s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		logger.Info("shutting down...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fail("server: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown", "error", err)
	}
}
