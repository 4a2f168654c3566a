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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"lexvault/internal/app"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath string
	listen     string
	backend    string
	verbose    bool
	debug      bool
	conceal    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vaultd",
		Short:        "Serve the confidential material store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.Listen = listen
			}
			if flags.Changed("store") {
				cfg.Store.Backend = backend
			}
			if flags.Changed("conceal-failure-kind") {
				cfg.ConcealFailureKind = conceal
			}
			cfg.Verbose = cfg.Verbose || verbose || debug
			cfg.Debug = cfg.Debug || debug

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default <home>/config.toml)")
	f.StringVar(&listen, "listen", "", "listen address (default 127.0.0.1:8443)")
	f.StringVar(&backend, "store", "", "store backend: file, sqlite or minio")
	f.BoolVar(&conceal, "conceal-failure-kind", false, "report signature and decryption failures as one kind")
	f.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	f.BoolVar(&debug, "debug", false, "log debug detail")
	return cmd
}

func serve(ctx context.Context, cfg app.Config) error {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	w, err := app.NewWire(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			w.Log.Warnf("close store: %v", err)
		}
	}()

	// Keys are generated in the background while the listener comes up.
	w.Keys.Start()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           w.Server().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("vaultd listening on %s (store: %s)\n", cfg.Listen, cfg.Store.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	w.Log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
