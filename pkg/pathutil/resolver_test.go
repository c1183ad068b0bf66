package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{Root: "/data/canteen"})

	if got := p.GetDatabasePath(); got != filepath.Join("/data/canteen", ".canteen", "canteen.db") {
		t.Errorf("GetDatabasePath() = %q", got)
	}
	if got := p.GetLedgerDir(); got != filepath.Join("/data/canteen", "ledger") {
		t.Errorf("GetLedgerDir() = %q", got)
	}
	if got := p.GetRoot(); got != "/data/canteen" {
		t.Errorf("GetRoot() = %q", got)
	}
}

func TestNewOverrides(t *testing.T) {
	p := New(Config{Root: "/data", DatabasePath: "/var/db/c.db", LedgerDir: "/srv/books"})

	if got := p.GetDatabasePath(); got != "/var/db/c.db" {
		t.Errorf("GetDatabasePath() = %q", got)
	}
	if got := p.GetYearDir("2024"); got != filepath.Join("/srv/books", "2024") {
		t.Errorf("GetYearDir() = %q", got)
	}
}

func TestGetMonthFilePath(t *testing.T) {
	p := New(Config{Root: "/data"})

	tests := []struct {
		name      string
		yearMonth string
		expected  string
		wantErr   bool
	}{
		{"valid", "2024-01", filepath.Join("/data", "ledger", "2024", "2024-01.beancount"), false},
		{"december", "2023-12", filepath.Join("/data", "ledger", "2023", "2023-12.beancount"), false},
		{"missing month", "2024", "", true},
		{"short month", "2024-1", "", true},
		{"full date", "2024-01-01", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.GetMonthFilePath(tt.yearMonth)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetMonthFilePath(%q) error = %v, wantErr %v", tt.yearMonth, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("GetMonthFilePath(%q) = %q, expected %q", tt.yearMonth, got, tt.expected)
			}
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{Root: root})

	file := filepath.Join(root, "a", "b", "c.txt")
	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}
	if !p.FileExists(filepath.Dir(file)) {
		t.Error("parent directory was not created")
	}
	if p.FileExists(file) {
		t.Error("FileExists reported a file that was never written")
	}

	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !p.FileExists(file) {
		t.Error("FileExists(file) = false after write")
	}
}
