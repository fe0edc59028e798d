package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/flight-search/internal/handler"
	"github.com/pkordes/flight-search/internal/theme"
	"github.com/pkordes/flight-search/internal/tracing"
	"github.com/pkordes/flight-search/internal/view"
)

const (
	serviceName = "flightsearch"

	// shutdownGrace is how long in-flight requests get after a signal.
	shutdownGrace = 15 * time.Second

	sweepInterval = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "TCP port to listen on (default 8080)")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Config -----------------------------------------------------------
	cfg, err := loadConfig()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		return err
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Tracing ----------------------------------------------------------
	shutdownTracing, err := tracing.Init(ctx, serviceName, version, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown error", "error", err)
		}
	}()

	// --- Services ---------------------------------------------------------
	a, err := newApp(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sweep(sweepCtx, sweepInterval, logger)

	// --- Views ------------------------------------------------------------
	palette, err := theme.Lookup(cfg.Theme)
	if err != nil {
		return err
	}
	views, err := view.New(palette)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	// --- Router -----------------------------------------------------------
	srv := handler.NewServer(handler.Options{
		Airports: a.airports,
		Flights:  a.flights,
		Views:    views,
		Currency: cfg.Currency,
		Logger:   logger,
	})
	router := handler.NewRouter(srv, handler.RouterConfig{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	// --- HTTP Server ------------------------------------------------------
	// The write timeout leaves room for a full upstream call.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr, "theme", palette.Name, "version", version)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		logger.Error("server error", "error", err)
		return err
	case <-stop:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
