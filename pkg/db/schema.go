// Package db provides SQLite storage for the canteen ledger: students and
// their balances, daily meal attendance, the transaction journal and bills.
package db

// Schema defines the SQL statements to create database tables.
// Money columns are TEXT holding exact decimal strings.
const Schema = `
-- Students and their current balance snapshot.
-- id is allocated by the ledger (smallest free positive integer), not AUTOINCREMENT.
CREATE TABLE IF NOT EXISTS students (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    roll TEXT NOT NULL UNIQUE,
    dept TEXT NOT NULL DEFAULT 'General',
    phone TEXT NOT NULL DEFAULT '',
    payment_status TEXT NOT NULL DEFAULT 'Unpaid',
    amount_paid TEXT NOT NULL DEFAULT '0',
    remaining_amount TEXT NOT NULL DEFAULT '0',
    created_at TEXT NOT NULL
);

-- One row per (student, date) with a flag per meal.
CREATE TABLE IF NOT EXISTS meal_attendance (
    student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    date TEXT NOT NULL,                -- YYYY-MM-DD
    breakfast INTEGER NOT NULL DEFAULT 0,
    lunch INTEGER NOT NULL DEFAULT 0,
    dinner INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (student_id, date)
);

-- Ledger-affecting events. Deleting a row reverses it.
CREATE TABLE IF NOT EXISTS journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    amount TEXT NOT NULL,
    date_time TEXT NOT NULL,           -- YYYY-MM-DD HH:MM:SS
    payment_mode TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('Payment', 'Food')),
    remarks TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_journal_student_date
    ON journal_entries(student_id, date_time);

-- Receipts of record, one per sale.
CREATE TABLE IF NOT EXISTS bills (
    bill_no INTEGER PRIMARY KEY AUTOINCREMENT,
    date_time TEXT NOT NULL,
    operator_id INTEGER NOT NULL DEFAULT 0,
    amount TEXT NOT NULL,
    payment_mode TEXT NOT NULL,
    student_id INTEGER REFERENCES students(id) ON DELETE CASCADE,
    detail TEXT NOT NULL               -- JSON encoded SaleDetail
);

CREATE INDEX IF NOT EXISTS idx_bills_date
    ON bills(date_time);

CREATE INDEX IF NOT EXISTS idx_bills_student
    ON bills(student_id);

-- Key-value metadata (e.g. last ledger export per month).
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.db.Exec(Schema); err != nil {
		return err
	}
	return nil
}
