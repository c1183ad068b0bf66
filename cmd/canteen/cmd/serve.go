package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/api"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

var servePort string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Start the HTTP API on --port (default PORT or 5000).

Example:
  canteen serve --port 8080`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port")
}

func runServe(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	// Setup structured JSON logging.
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	svc := ledger.NewService(a.conn, ledger.Config{
		Tariff:               a.tariff,
		RejectDuplicateMeals: a.cfg.Ledger.RejectDuplicateMeals,
		Logger:               logger,
	})

	port := servePort
	if port == "" {
		port = a.cfg.Server.Port
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("starting canteen API", "addr", addr, "db_path", a.conn.GetPath())

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(svc, a.reporter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		exitOnError(err, "server error")
	}

	slog.Info("server stopped")
}
