// Package storage provides the durable persistence backends for the
// ledger: a flat CSV file and an SQLite database, interchangeable
// behind the same load/save/append surface.
package storage

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mrossi/soldi/internal/common"
	"github.com/mrossi/soldi/internal/model"
)

const (
	csvHeader     = "ID,Type,Amount,Description,Category,Date"
	csvFieldCount = 6
	dateLayout    = "2006-01-02"

	// placeholderDescription is attached to categories rebuilt from
	// CSV rows; the registry's richer description is not recoverable
	// from the file and is not required to match.
	placeholderDescription = "Imported from CSV"
)

// CSVStore persists the transaction set as a flat CSV file. It holds
// no in-memory state; every call opens and releases the file itself.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store for the given file path, creating the
// parent directory if needed. The file itself is created lazily on
// first write.
func NewCSVStore(path string) (*CSVStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, common.NewStoreError("csv store path cannot be empty", nil)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, common.NewStoreError("failed to create data directory", err)
		}
	}
	return &CSVStore{path: path}, nil
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Close is a no-op; the store keeps no handles open between calls.
func (s *CSVStore) Close() error {
	return nil
}

// SaveAll overwrites the file with the header and one row per transaction.
func (s *CSVStore) SaveAll(_ context.Context, transactions []model.Transaction) error {
	f, err := os.Create(s.path)
	if err != nil {
		return common.NewStoreError("failed to open ledger file for writing", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, csvHeader)
	for _, txn := range transactions {
		fmt.Fprintln(w, formatRecord(txn))
	}
	if err := w.Flush(); err != nil {
		return common.NewStoreError("failed to write ledger file", err)
	}

	slog.Info("ledger written to CSV", "path", s.path, "transactions", len(transactions))
	return nil
}

// Load reads every data row from the file. A missing file is the
// expected first-run state and returns an empty slice. A row that does
// not parse is skipped and logged so one corrupt line cannot make the
// whole ledger unreadable.
func (s *CSVStore) Load(_ context.Context) ([]model.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("ledger file not found, starting empty", "path", s.path)
			return []model.Transaction{}, nil
		}
		return nil, common.NewStoreError("failed to open ledger file", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		// Empty file, not even a header.
		if err := scanner.Err(); err != nil {
			return nil, common.NewStoreError("failed to read ledger file", err)
		}
		return []model.Transaction{}, nil
	}

	var transactions []model.Transaction
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		txn, err := parseRecord(line)
		if err != nil {
			slog.Warn("skipping malformed CSV row", "line", line, "error", err)
			continue
		}
		transactions = append(transactions, txn)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.NewStoreError("failed to read ledger file", err)
	}

	slog.Info("ledger loaded from CSV", "path", s.path, "transactions", len(transactions))
	return transactions, nil
}

// Append adds one row in append mode, writing the header first if the
// file did not previously exist.
func (s *CSVStore) Append(_ context.Context, txn model.Transaction) error {
	_, statErr := os.Stat(s.path)
	existed := statErr == nil

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return common.NewStoreError("failed to open ledger file for append", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	if !existed {
		fmt.Fprintln(w, csvHeader)
	}
	fmt.Fprintln(w, formatRecord(txn))
	if err := w.Flush(); err != nil {
		return common.NewStoreError("failed to append to ledger file", err)
	}

	slog.Debug("transaction appended to CSV", "id", txn.ID)
	return nil
}

// formatRecord renders a transaction as one CSV row. The amount keeps
// its full floating-point textual form; rounding is a display concern.
func formatRecord(txn model.Transaction) string {
	fields := []string{
		escapeField(txn.ID),
		escapeField(string(txn.Type)),
		strconv.FormatFloat(txn.Amount, 'g', -1, 64),
		escapeField(txn.Description),
		escapeField(txn.Category.Name),
		txn.Date.Format(dateLayout),
	}
	return strings.Join(fields, ",")
}

// parseRecord rebuilds a transaction from one CSV row. The category is
// synthesized from the name field with a placeholder description.
func parseRecord(line string) (model.Transaction, error) {
	fields := splitRecord(line)
	if len(fields) != csvFieldCount {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", csvFieldCount, len(fields))
	}

	id := unescapeField(fields[0])
	if id == "" {
		return model.Transaction{}, fmt.Errorf("empty transaction id")
	}

	txType := model.TransactionType(unescapeField(fields[1]))
	if !txType.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q", fields[1])
	}

	amount, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", fields[2], err)
	}

	date, err := time.Parse(dateLayout, fields[5])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid date %q: %w", fields[5], err)
	}

	return model.Transaction{
		ID:          id,
		Type:        txType,
		Amount:      amount,
		Description: unescapeField(fields[3]),
		Category:    model.NewCategory(unescapeField(fields[4]), placeholderDescription),
		Date:        date,
	}, nil
}

// escapeField wraps a field in double quotes when it contains a comma,
// a quote, or a newline, doubling any internal quotes. Plain fields
// are written bare.
func escapeField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// unescapeField reverses escapeField. A field counts as quoted only if
// it both starts and ends with a double quote.
func unescapeField(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return strings.ReplaceAll(value[1:len(value)-1], `""`, `"`)
	}
	return value
}

// splitRecord splits a row on commas, treating commas inside quoted
// fields as content. Quotes are left in place for unescapeField.
func splitRecord(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			field.WriteByte(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}
	fields = append(fields, field.String())
	return fields
}
