package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

var (
	payStudent int64
	payAmount  string
	payMode    string
	payRemarks string
)

// payCmd represents the pay command.
var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Record a payment against a student's account",
	Long: `Record money received from a student. The amount lowers the
remaining debt and is added to the amount paid.

Example:
  canteen pay --student 3 --amount 500 --mode UPI`,
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := decimal.NewFromString(payAmount)
		exitOnError(err, "invalid amount")

		a := openApp()
		defer a.Close()

		result, err := a.service.ApplyPayment(cmd.Context(), ledger.PaymentRequest{
			StudentID:   payStudent,
			Amount:      amount,
			PaymentMode: payMode,
			Remarks:     payRemarks,
		})
		exitOnError(err, "failed to record payment")

		fmt.Printf("Journal entry %d recorded\n", result.JournalEntryID)
		printBalance(result.Balance)
	},
}

// reverseCmd represents the reverse command.
var reverseCmd = &cobra.Command{
	Use:   "reverse <entry-id>",
	Short: "Reverse a journal entry",
	Long: `Undo the balance effect of a journal entry and remove it.
Bills and attendance are left untouched.

Example:
  canteen reverse 42`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		a := openApp()
		defer a.Close()

		balance, err := a.service.ReverseEntry(cmd.Context(), id)
		exitOnError(err, "failed to reverse entry")

		fmt.Printf("Reversed journal entry %d\n", id)
		printBalance(*balance)
	},
}

// billCmd represents the bill command.
var billCmd = &cobra.Command{
	Use:   "bill <bill-no>",
	Short: "Show a bill",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		billNo := parseID(args[0])
		a := openApp()
		defer a.Close()

		bill, err := a.service.GetBill(cmd.Context(), billNo)
		exitOnError(err, "failed to get bill")
		printJSON(bill)
	},
}

func init() {
	payCmd.Flags().Int64Var(&payStudent, "student", 0, "Student id (required)")
	payCmd.Flags().StringVar(&payAmount, "amount", "", "Amount received (required)")
	payCmd.Flags().StringVar(&payMode, "mode", "Cash", "Payment mode")
	payCmd.Flags().StringVar(&payRemarks, "remarks", "", "Remarks (default Fee Payment)")

	payCmd.MarkFlagRequired("student")
	payCmd.MarkFlagRequired("amount")
}
