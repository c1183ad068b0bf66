package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/beancount"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/converter"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/report"
)

var (
	exportMonth  string
	exportDryRun bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal of a month to Beancount",
	Long: `Write the journal entries of a month to {ledger}/YYYY/YYYY-MM.beancount.

The month file is regenerated from the journal on every run, so reversed
entries disappear from it.

Example:
  canteen export --month 2024-01
  canteen export --month 2024-01 --dry-run`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Month (YYYY-MM, default current month)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Dry run mode (no file writes)")
}

func runExport(cmd *cobra.Command, args []string) {
	if exportMonth == "" {
		exportMonth = time.Now().Format("2006-01")
	}
	slog.Info("Starting export", "month", exportMonth, "dry_run", exportDryRun)

	a := openApp()
	defer a.Close()

	exporter := converter.NewExporter(a.conn, converter.NewConverter(a.tariff),
		beancount.NewFileSystemRepository(a.paths))

	if exportDryRun {
		result, err := exporter.Render(cmd.Context(), exportMonth)
		exitOnError(err, "failed to render journal")

		filePath, err := a.paths.GetMonthFilePath(exportMonth)
		exitOnError(err, "failed to get month file path")

		fmt.Printf("[DRY RUN] Would write %d entries to %s\n", result.Entries, filePath)
		for _, txn := range result.Rendered {
			fmt.Println(txn)
		}
		return
	}

	result, err := exporter.Export(cmd.Context(), exportMonth, report.MetadataLastExport)
	exitOnError(err, "failed to export journal")

	slog.Info("Export completed", "month", result.YearMonth, "entries", result.Entries)
	fmt.Printf("Exported %d entries for %s\n", result.Entries, result.YearMonth)
}
