package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/beancount"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// ExportResult describes one exported month.
type ExportResult struct {
	YearMonth string
	Entries   int
	Rendered  []string
}

// Exporter writes monthly ledger files from the journal.
type Exporter struct {
	conn      *db.Connection
	converter *Converter
	repo      beancount.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(conn *db.Connection, converter *Converter, repo beancount.Repository) *Exporter {
	return &Exporter{conn: conn, converter: converter, repo: repo}
}

// Render converts the journal entries of yearMonth (YYYY-MM) without
// touching the file system.
func (e *Exporter) Render(ctx context.Context, yearMonth string) (*ExportResult, error) {
	start, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", yearMonth, err)
	}
	end := start.AddDate(0, 1, -1)

	st := e.conn.Store()
	entries, err := st.ListJournalEntries(ctx, db.JournalFilter{
		From: start.Format(time.DateOnly),
		To:   end.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	students, err := st.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}

	result := &ExportResult{YearMonth: yearMonth, Entries: len(entries)}
	for _, entry := range entries {
		txn := e.converter.ConvertEntry(entry, names[entry.StudentID])
		result.Rendered = append(result.Rendered, e.converter.FormatTransaction(txn))
	}
	return result, nil
}

// Export regenerates the ledger file of yearMonth and records the export
// time under metadataKey.
func (e *Exporter) Export(ctx context.Context, yearMonth, metadataKey string) (*ExportResult, error) {
	result, err := e.Render(ctx, yearMonth)
	if err != nil {
		return nil, err
	}

	if err := e.repo.WriteMonthFile(yearMonth, result.Rendered); err != nil {
		return nil, err
	}

	stamp := fmt.Sprintf("%s %s", yearMonth, time.Now().Format(time.DateTime))
	if err := e.conn.Store().SetMetadata(ctx, metadataKey, stamp); err != nil {
		return nil, err
	}
	return result, nil
}
