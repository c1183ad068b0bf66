package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/config"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/pathutil"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/report"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/tariff"
)

// app holds the components every command wires together.
type app struct {
	cfg      *config.Config
	paths    *pathutil.PathResolver
	conn     *db.Connection
	tariff   *tariff.Tariff
	service  *ledger.Service
	reporter *report.Reporter
}

// openApp loads configuration and opens the store. Callers must Close.
func openApp() *app {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate([]string{"storage", "root"}); err != nil {
		exitOnError(err, "invalid configuration")
	}
	if cfg.Debug && !debug {
		debug = true
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	paths := pathutil.New(pathutil.Config{
		Root:         cfg.Storage.Root,
		DatabasePath: cfg.Storage.DBPath,
		LedgerDir:    cfg.Storage.LedgerDir,
	})

	t := tariff.Default()
	if cfg.Ledger.TariffFile != "" {
		t, err = tariff.Load(cfg.Ledger.TariffFile)
		exitOnError(err, "failed to load tariff")
	}

	dbPath := paths.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")

	return &app{
		cfg:    cfg,
		paths:  paths,
		conn:   conn,
		tariff: t,
		service: ledger.NewService(conn, ledger.Config{
			Tariff:               t,
			RejectDuplicateMeals: cfg.Ledger.RejectDuplicateMeals,
		}),
		reporter: report.New(conn, t),
	}
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

// printJSON writes v indented to stdout.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		exitOnError(err, "failed to encode output")
	}
}

func printBalance(b ledger.Balance) {
	fmt.Printf("Student:   %d\n", b.StudentID)
	fmt.Printf("Remaining: %s\n", b.Remaining.StringFixed(2))
	fmt.Printf("Paid:      %s\n", b.Paid.StringFixed(2))
	fmt.Printf("Status:    %s\n", b.Status)
}
