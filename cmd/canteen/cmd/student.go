package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

var studentInput ledger.StudentInput

// studentCmd groups student administration.
var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage hostel students",
}

var studentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a student with a zero balance",
	Long: `Add a student. The student receives the smallest unused id.

Example:
  canteen student add --name "Asha" --roll R-12 --dept CSE`,
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp()
		defer a.Close()

		st, err := a.service.CreateStudent(cmd.Context(), studentInput)
		exitOnError(err, "failed to add student")
		printStudent(st)
	},
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students with their balance",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp()
		defer a.Close()

		students, err := a.service.ListStudents(cmd.Context())
		exitOnError(err, "failed to list students")

		fmt.Printf("%-5s %-24s %-14s %-10s %10s %10s\n", "ID", "NAME", "ROLL", "STATUS", "REMAINING", "PAID")
		for _, st := range students {
			fmt.Printf("%-5d %-24s %-14s %-10s %10s %10s\n",
				st.ID, st.Name, st.Roll, st.PaymentStatus,
				st.RemainingAmount.StringFixed(2), st.AmountPaid.StringFixed(2))
		}
	},
}

var studentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a student's name, roll, department and phone",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		a := openApp()
		defer a.Close()

		st, err := a.service.UpdateStudent(cmd.Context(), id, studentInput)
		exitOnError(err, "failed to update student")
		printStudent(st)
	},
}

var studentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a student with their attendance and journal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		a := openApp()
		defer a.Close()

		exitOnError(a.service.DeleteStudent(cmd.Context(), id), "failed to delete student")
		fmt.Printf("Deleted student %d\n", id)
	},
}

var studentResetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Clear a student's attendance, journal and balance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		a := openApp()
		defer a.Close()

		balance, err := a.service.ResetStudent(cmd.Context(), id)
		exitOnError(err, "failed to reset student")
		printBalance(*balance)
	},
}

func init() {
	for _, c := range []*cobra.Command{studentAddCmd, studentUpdateCmd} {
		c.Flags().StringVar(&studentInput.Name, "name", "", "Student name (required)")
		c.Flags().StringVar(&studentInput.Roll, "roll", "", "Roll number")
		c.Flags().StringVar(&studentInput.Dept, "dept", "", "Department (default General)")
		c.Flags().StringVar(&studentInput.Phone, "phone", "", "Phone number")
		c.MarkFlagRequired("name")
	}

	studentCmd.AddCommand(studentAddCmd, studentListCmd, studentUpdateCmd, studentDeleteCmd, studentResetCmd)
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err == nil && id <= 0 {
		err = fmt.Errorf("must be positive")
	}
	exitOnError(err, fmt.Sprintf("invalid id %q", s))
	return id
}

func printStudent(st *db.Student) {
	fmt.Printf("ID:        %d\n", st.ID)
	fmt.Printf("Name:      %s\n", st.Name)
	fmt.Printf("Roll:      %s\n", st.Roll)
	fmt.Printf("Dept:      %s\n", st.Dept)
	if st.Phone != "" {
		fmt.Printf("Phone:     %s\n", st.Phone)
	}
	fmt.Printf("Status:    %s\n", st.PaymentStatus)
	fmt.Printf("Remaining: %s\n", st.RemainingAmount.StringFixed(2))
	fmt.Printf("Paid:      %s\n", st.AmountPaid.StringFixed(2))
}
