// Package converter turns journal entries into double-entry Beancount
// transactions.
package converter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/beancount"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/tariff"
)

// Converter converts journal entries to Beancount format.
type Converter struct {
	tariff   *tariff.Tariff
	currency string
}

// NewConverter creates a new Converter.
func NewConverter(t *tariff.Tariff) *Converter {
	if t == nil {
		t = tariff.Default()
	}
	return &Converter{
		tariff:   t,
		currency: t.Currency(),
	}
}

// ConvertEntry converts a journal entry. payee is the student's name and
// may be empty.
//
// Food moves the charge from the meal's income account onto the student's
// receivable. Payment moves it from the receivable into the asset account
// of the payment mode.
func (c *Converter) ConvertEntry(entry db.JournalEntry, payee string) beancount.Transaction {
	receivable := c.tariff.ReceivableAccount(entry.StudentID)

	var debit, credit string
	var tags []string
	switch entry.Kind {
	case db.KindFood:
		debit = receivable
		credit = c.incomeAccount(entry.Remarks)
		tags = []string{"food"}
	default:
		debit = c.tariff.ModeAccount(entry.PaymentMode)
		credit = receivable
		tags = []string{"payment"}
	}

	return beancount.Transaction{
		Date:      entry.DateTime.Format(time.DateOnly),
		Narration: buildNarration(entry),
		Payee:     payee,
		Tags:      tags,
		Metadata: map[string]string{
			"entry_id": fmt.Sprintf("%d", entry.ID),
			"mode":     entry.PaymentMode,
		},
		Postings: []beancount.Posting{
			{Account: debit, Amount: entry.Amount, Currency: c.currency},
			{Account: credit, Amount: entry.Amount.Neg(), Currency: c.currency},
		},
	}
}

// incomeAccount picks the meal income account from the remarks of a Food
// entry ("Lunch (Bill #12)").
func (c *Converter) incomeAccount(remarks string) string {
	fields := strings.Fields(remarks)
	if len(fields) > 0 {
		if meal, ok := c.tariff.Normalize(fields[0]); ok {
			return c.tariff.MealAccount(meal)
		}
	}
	return c.tariff.OtherIncomeAccount()
}

// FormatTransaction formats a Beancount transaction as a string.
func (c *Converter) FormatTransaction(txn beancount.Transaction) string {
	var sb strings.Builder

	// Transaction header
	sb.WriteString(txn.Date)
	sb.WriteString(" *")
	if txn.Payee != "" {
		sb.WriteString(fmt.Sprintf(" %q", txn.Payee))
	}
	sb.WriteString(fmt.Sprintf(" %q", txn.Narration))
	if len(txn.Tags) > 0 {
		sb.WriteString(" #")
		sb.WriteString(strings.Join(txn.Tags, " #"))
	}
	sb.WriteString("\n")

	// Metadata in stable order
	keys := make([]string, 0, len(txn.Metadata))
	for k := range txn.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s: %q\n", k, txn.Metadata[k]))
	}

	// Postings
	for _, posting := range txn.Postings {
		sb.WriteString("  ")
		sb.WriteString(posting.Account)

		// Right-align amount (typical Beancount style)
		spaces := max(1, 50-len(posting.Account))
		sb.WriteString(strings.Repeat(" ", spaces))

		sb.WriteString(fmt.Sprintf("%s %s", formatAmount(posting.Amount), posting.Currency))

		if posting.Comment != "" {
			sb.WriteString(fmt.Sprintf(" ; %s", posting.Comment))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func buildNarration(entry db.JournalEntry) string {
	if entry.Remarks != "" {
		return entry.Remarks
	}
	if entry.Kind == db.KindFood {
		return "Food on account"
	}
	return "Payment"
}
