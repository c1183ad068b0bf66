// Package pathutil provides centralized path management for the canteen data directory.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths for the database and exported ledger files.
type PathResolver struct {
	root         string
	databasePath string
	ledgerDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// Root is the data directory (e.g., ~/canteen)
	Root string
	// DatabasePath is the path to the SQLite database file
	DatabasePath string
	// LedgerDir is the directory for exported Beancount files
	LedgerDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {Root}/.canteen/canteen.db
// If LedgerDir is empty, it defaults to {Root}/ledger
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.Root, ".canteen", "canteen.db")
	}

	ledgerDir := config.LedgerDir
	if ledgerDir == "" {
		ledgerDir = filepath.Join(config.Root, "ledger")
	}

	return &PathResolver{
		root:         config.Root,
		databasePath: dbPath,
		ledgerDir:    ledgerDir,
	}
}

// GetRoot returns the data directory.
func (p *PathResolver) GetRoot() string {
	return p.root
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetLedgerDir returns the ledger export directory.
func (p *PathResolver) GetLedgerDir() string {
	return p.ledgerDir
}

// GetYearDir returns the ledger directory for a year.
// Example: ~/canteen/ledger/2024
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.ledgerDir, year)
}

// GetMonthFilePath returns the ledger file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ~/canteen/ledger/2024/2024-01.beancount
func (p *PathResolver) GetMonthFilePath(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}

	year := parts[0]
	yearDir := p.GetYearDir(year)
	filename := fmt.Sprintf("%s.beancount", yearMonth)

	return filepath.Join(yearDir, filename), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return p.EnsureDir(dir)
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
