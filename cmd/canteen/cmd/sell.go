package cmd

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

var (
	sellPayer    string
	sellStudent  int64
	sellName     string
	sellMeal     string
	sellAmount   string
	sellMode     string
	sellOperator int64
)

// sellCmd represents the sell command.
var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Record a sale at the counter",
	Long: `Record a sale and print the bill.

For hostel students the meal is marked in today's attendance. With
--mode Account the amount is added to the student's debt instead of
being collected. When --amount is omitted for a hostel meal the tariff
price is used.

Example:
  canteen sell --student 3 --meal lunch --mode Account
  canteen sell --payer guest --name Visitor --meal Tea --amount 15 --mode UPI`,
	Run: runSell,
}

func init() {
	sellCmd.Flags().StringVar(&sellPayer, "payer", string(db.PayerHostel), "Payer type: hostel, staff or guest")
	sellCmd.Flags().Int64Var(&sellStudent, "student", 0, "Student id (hostel sales)")
	sellCmd.Flags().StringVar(&sellName, "name", "", "Payer name (staff and guest sales)")
	sellCmd.Flags().StringVar(&sellMeal, "meal", "", "Meal or item sold (required)")
	sellCmd.Flags().StringVar(&sellAmount, "amount", "", "Amount charged")
	sellCmd.Flags().StringVar(&sellMode, "mode", "Cash", "Payment mode (Cash, UPI, Card, Account)")
	sellCmd.Flags().Int64Var(&sellOperator, "operator", 0, "Operator id")

	sellCmd.MarkFlagRequired("meal")
}

func runSell(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	amount, err := sellAmountOrPrice(a)
	exitOnError(err, "invalid amount")

	req := ledger.SaleRequest{
		PayerType:   db.PayerType(sellPayer),
		PayerName:   sellName,
		MealType:    sellMeal,
		Amount:      amount,
		PaymentMode: sellMode,
		OperatorID:  sellOperator,
	}
	if sellStudent != 0 {
		id := sellStudent
		req.StudentID = &id
	}

	receipt, err := a.service.RecordSale(cmd.Context(), req)
	exitOnError(err, "failed to record sale")

	fmt.Printf("\n=== Bill #%d ===\n", receipt.BillNo)
	fmt.Printf("Date:    %s\n", receipt.DateTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Item:    %s\n", receipt.Detail.Item)
	fmt.Printf("Amount:  %s %s\n", receipt.Amount.StringFixed(2), a.tariff.Currency())
	fmt.Printf("Mode:    %s\n", receipt.PaymentMode)
	if receipt.Balance != nil {
		fmt.Println()
		printBalance(*receipt.Balance)
	}
	fmt.Println()
}

func sellAmountOrPrice(a *app) (decimal.Decimal, error) {
	if sellAmount != "" {
		return decimal.NewFromString(sellAmount)
	}
	if db.PayerType(sellPayer) == db.PayerHostel {
		if meal, ok := a.tariff.Normalize(sellMeal); ok {
			return a.tariff.Price(meal), nil
		}
	}
	return decimal.Zero, errors.New("--amount is required unless selling a hostel meal")
}
