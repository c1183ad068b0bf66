package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display store statistics",
	Long: `Display statistics about the canteen store.

Shows:
- Number of students
- Number of bills and the time of the last one
- Number of journal entries
- Last ledger export

Example:
  canteen stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	stats, err := a.reporter.Stats(cmd.Context())
	exitOnError(err, "failed to get statistics")

	// Display statistics
	fmt.Println("\n=== Canteen Statistics ===")
	fmt.Printf("Students:        %d\n", stats.Students)
	fmt.Printf("Bills:           %d\n", stats.Bills)
	fmt.Printf("Journal entries: %d\n", stats.JournalEntries)

	if stats.LastBill != "" {
		fmt.Printf("Last bill:       %s\n", stats.LastBill)
	} else {
		fmt.Printf("Last bill:       (never)\n")
	}
	if stats.LastExport != "" {
		fmt.Printf("Last export:     %s\n", stats.LastExport)
	} else {
		fmt.Printf("Last export:     (never)\n")
	}

	fmt.Println()

	slog.Info("Statistics displayed successfully")
}
