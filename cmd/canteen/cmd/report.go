package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reportFrom string
	reportTo   string
	reportDate string
	reportJSON bool
)

// reportCmd groups the read-only reports.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print statements and meal reports",
}

var reportStatementCmd = &cobra.Command{
	Use:   "statement <student-id>",
	Short: "Print a student's meals, transactions and totals",
	Long: `Print a student's statement between --from and --to (inclusive).

Example:
  canteen report statement 3 --from 2024-01-01 --to 2024-01-31`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		a := openApp()
		defer a.Close()

		st, err := a.reporter.StudentStatement(cmd.Context(), id, reportFrom, reportTo)
		exitOnError(err, "failed to build statement")

		if reportJSON {
			printJSON(st)
			return
		}

		cur := a.tariff.Currency()
		fmt.Printf("\n=== Statement: %s (%s) ===\n", st.Student.Name, st.Student.Roll)
		fmt.Printf("Breakfasts:        %d\n", st.Summary.Breakfast)
		fmt.Printf("Lunches:           %d\n", st.Summary.Lunch)
		fmt.Printf("Dinners:           %d\n", st.Summary.Dinner)
		fmt.Printf("Estimated cost:    %s %s\n", st.Summary.EstimatedCost.StringFixed(2), cur)
		fmt.Printf("Food charged:      %s %s\n", st.Summary.FoodCharged.StringFixed(2), cur)
		fmt.Printf("Payments received: %s %s\n", st.Summary.PaymentsReceived.StringFixed(2), cur)
		fmt.Printf("Remaining:         %s %s (%s)\n", st.Student.RemainingAmount.StringFixed(2), cur, st.Student.PaymentStatus)

		if len(st.Transactions) > 0 {
			fmt.Println("\nTransactions:")
			for _, e := range st.Transactions {
				fmt.Printf("  #%-5d %s %-8s %10s %-8s %s\n",
					e.ID, e.DateTime.Format("2006-01-02 15:04"), e.Kind,
					e.Amount.StringFixed(2), e.PaymentMode, e.Remarks)
			}
		}
		fmt.Println()
	},
}

var reportMealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Count meals sold on a date",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp()
		defer a.Close()

		counts, err := a.reporter.DailyMeals(cmd.Context(), reportDate)
		exitOnError(err, "failed to count meals")

		if reportJSON {
			printJSON(counts)
			return
		}
		fmt.Printf("Breakfast: %d\n", counts.Breakfast)
		fmt.Printf("Lunch:     %d\n", counts.Lunch)
		fmt.Printf("Dinner:    %d\n", counts.Dinner)
	},
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise every student's activity over a period",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp()
		defer a.Close()

		rows, err := a.reporter.PeriodSummary(cmd.Context(), reportFrom, reportTo)
		exitOnError(err, "failed to build summary")

		if reportJSON {
			printJSON(rows)
			return
		}
		fmt.Printf("%-5s %-24s %4s %4s %4s %10s %10s %10s %-8s\n",
			"ID", "NAME", "B", "L", "D", "CHARGED", "PAID", "REMAINING", "STATUS")
		for _, r := range rows {
			fmt.Printf("%-5d %-24s %4d %4d %4d %10s %10s %10s %-8s\n",
				r.StudentID, r.Name, r.Meals.Breakfast, r.Meals.Lunch, r.Meals.Dinner,
				r.FoodCharged.StringFixed(2), r.PaymentsReceived.StringFixed(2),
				r.Remaining.StringFixed(2), r.Status)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{reportStatementCmd, reportSummaryCmd} {
		c.Flags().StringVar(&reportFrom, "from", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&reportTo, "to", "", "End date (YYYY-MM-DD)")
	}
	reportMealsCmd.Flags().StringVar(&reportDate, "date", "", "Date (YYYY-MM-DD, default today)")

	reportCmd.PersistentFlags().BoolVar(&reportJSON, "json", false, "Print JSON")
	reportCmd.AddCommand(reportStatementCmd, reportMealsCmd, reportSummaryCmd)
}
