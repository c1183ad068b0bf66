package converter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

func TestConvertEntry(t *testing.T) {
	c := NewConverter(nil)
	at := time.Date(2024, 1, 5, 13, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		entry     db.JournalEntry
		debit     string
		credit    string
		tag       string
		narration string
	}{
		{
			name:      "food on account",
			entry:     db.JournalEntry{ID: 3, StudentID: 2, Amount: decimal.NewFromInt(40), DateTime: at, PaymentMode: db.ModeAccount, Kind: db.KindFood, Remarks: "Lunch (Bill #7)"},
			debit:     "Assets:Receivable:Students:S2",
			credit:    "Income:Canteen:Lunch",
			tag:       "food",
			narration: "Lunch (Bill #7)",
		},
		{
			name:      "food with unknown item",
			entry:     db.JournalEntry{ID: 4, StudentID: 2, Amount: decimal.NewFromInt(15), DateTime: at, PaymentMode: db.ModeAccount, Kind: db.KindFood},
			debit:     "Assets:Receivable:Students:S2",
			credit:    "Income:Canteen:Other",
			tag:       "food",
			narration: "Food on account",
		},
		{
			name:      "payment by upi",
			entry:     db.JournalEntry{ID: 5, StudentID: 9, Amount: decimal.NewFromInt(100), DateTime: at, PaymentMode: "UPI", Kind: db.KindPayment, Remarks: "Fee Payment"},
			debit:     "Assets:Bank:UPI",
			credit:    "Assets:Receivable:Students:S9",
			tag:       "payment",
			narration: "Fee Payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := c.ConvertEntry(tt.entry, "Asha")

			if txn.Date != "2024-01-05" {
				t.Errorf("Date = %q", txn.Date)
			}
			if txn.Narration != tt.narration {
				t.Errorf("Narration = %q, expected %q", txn.Narration, tt.narration)
			}
			if len(txn.Tags) != 1 || txn.Tags[0] != tt.tag {
				t.Errorf("Tags = %v, expected [%s]", txn.Tags, tt.tag)
			}
			if len(txn.Postings) != 2 {
				t.Fatalf("got %d postings, expected 2", len(txn.Postings))
			}
			if txn.Postings[0].Account != tt.debit || txn.Postings[1].Account != tt.credit {
				t.Errorf("accounts = %s / %s, expected %s / %s",
					txn.Postings[0].Account, txn.Postings[1].Account, tt.debit, tt.credit)
			}
			sum := txn.Postings[0].Amount.Add(txn.Postings[1].Amount)
			if !sum.IsZero() {
				t.Errorf("postings do not balance: %s", sum)
			}
			if !txn.Postings[0].Amount.Equal(tt.entry.Amount) {
				t.Errorf("debit = %s, expected %s", txn.Postings[0].Amount, tt.entry.Amount)
			}
		})
	}
}

func TestFormatTransaction(t *testing.T) {
	c := NewConverter(nil)
	entry := db.JournalEntry{
		ID:          3,
		StudentID:   2,
		Amount:      decimal.RequireFromString("40"),
		DateTime:    time.Date(2024, 1, 5, 13, 0, 0, 0, time.Local),
		PaymentMode: db.ModeAccount,
		Kind:        db.KindFood,
		Remarks:     "Lunch (Bill #7)",
	}

	got := c.FormatTransaction(c.ConvertEntry(entry, "Asha"))

	receivable := "Assets:Receivable:Students:S2"
	income := "Income:Canteen:Lunch"
	expected := `2024-01-05 * "Asha" "Lunch (Bill #7)" #food` + "\n" +
		`  entry_id: "3"` + "\n" +
		`  mode: "Account"` + "\n" +
		"  " + receivable + strings.Repeat(" ", 50-len(receivable)) + "40.00 INR\n" +
		"  " + income + strings.Repeat(" ", 50-len(income)) + "-40.00 INR\n"

	if got != expected {
		t.Errorf("FormatTransaction() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestFormatTransactionWithoutPayee(t *testing.T) {
	c := NewConverter(nil)
	entry := db.JournalEntry{
		ID:          1,
		StudentID:   1,
		Amount:      decimal.RequireFromString("12.5"),
		DateTime:    time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local),
		PaymentMode: "Cash",
		Kind:        db.KindPayment,
	}

	got := c.FormatTransaction(c.ConvertEntry(entry, ""))
	if !strings.HasPrefix(got, `2024-01-05 * "Payment" #payment`+"\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "12.50 INR\n") || !strings.Contains(got, "-12.50 INR\n") {
		t.Errorf("amounts not formatted with two decimals:\n%s", got)
	}
}
