package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/qcore/internal/app"
	"github.com/kegliz/qcore/internal/config"
)

var version = "dev"

func main() {
	cfg, err := config.New(config.Options{ConfigFile: os.Getenv("QCORE_CONFIG_FILE")})
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		fmt.Fprintf(os.Stderr, "building server: %v\n", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.GetInt("server.port"), cfg.GetBool("server.local_only"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "server stopped: %v\n", err)
			os.Exit(1)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "graceful shutdown failed: %v\n", err)
			os.Exit(1)
		}
	}
}
