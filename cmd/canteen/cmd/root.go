// Package cmd provides CLI commands for the canteen ledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "canteen",
	Short: "Canteen point of sale and student account ledger",
	Long: `canteen records counter sales, student meal attendance and the
running account of every hostel student.

It supports:
- Billing sales to hostel students, staff and guests
- Charging meals on Account and settling payments
- Reversing journal entries
- Student statements and meal reports
- Exporting the journal to monthly Beancount files

Example:
  canteen student add --name "Asha" --roll R-12
  canteen sell --student 1 --meal lunch --mode Account
  canteen pay --student 1 --amount 40
  canteen serve`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(studentCmd)
	rootCmd.AddCommand(sellCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(reverseCmd)
	rootCmd.AddCommand(billCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
