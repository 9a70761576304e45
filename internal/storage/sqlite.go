package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrossi/soldi/internal/common"
	"github.com/mrossi/soldi/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists the transaction set in an SQLite database. It
// offers the same load/save/append surface as CSVStore so either can
// back the ledger service.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id          TEXT PRIMARY KEY,
		type        TEXT NOT NULL,
		amount      REAL NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL,
		date        TEXT NOT NULL
	)`

// NewSQLiteStore opens (or creates) the database at the given path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, common.NewStoreError("sqlite store path cannot be empty", nil)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, common.NewStoreError("failed to create data directory", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, common.NewStoreError("failed to open database", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, common.NewStoreError("failed to ping database", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, common.NewStoreError("failed to create schema", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the backing database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns all transactions in insertion order. Rows that no
// longer parse are skipped and logged, matching the CSV store's
// tolerance for individual bad records.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, amount, description, category, date
		FROM transactions
		ORDER BY rowid`)
	if err != nil {
		return nil, common.NewStoreError("failed to query transactions", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			txn      model.Transaction
			txType   string
			category string
			dateStr  string
		)
		if err := rows.Scan(&txn.ID, &txType, &txn.Amount, &txn.Description, &category, &dateStr); err != nil {
			return nil, common.NewStoreError("failed to scan transaction", err)
		}

		txn.Type = model.TransactionType(txType)
		if !txn.Type.Valid() {
			slog.Warn("skipping row with unknown transaction type", "id", txn.ID, "type", txType)
			continue
		}
		txn.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			slog.Warn("skipping row with invalid date", "id", txn.ID, "date", dateStr)
			continue
		}
		txn.Category = model.NewCategory(category, placeholderDescription)

		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStoreError("failed to iterate transactions", err)
	}

	slog.Info("ledger loaded from SQLite", "path", s.path, "transactions", len(transactions))
	return transactions, nil
}

// SaveAll replaces the persisted set with the given transactions in a
// single database transaction.
func (s *SQLiteStore) SaveAll(ctx context.Context, transactions []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewStoreError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return common.NewStoreError("failed to clear transactions", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, type, amount, description, category, date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return common.NewStoreError("failed to prepare insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			txn.ID,
			string(txn.Type),
			txn.Amount,
			txn.Description,
			txn.Category.Name,
			txn.Date.Format(dateLayout),
		); err != nil {
			return common.NewStoreError(fmt.Sprintf("failed to insert transaction %s", txn.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.NewStoreError("failed to commit", err)
	}

	slog.Info("ledger written to SQLite", "path", s.path, "transactions", len(transactions))
	return nil
}

// Append durably adds a single transaction.
func (s *SQLiteStore) Append(ctx context.Context, txn model.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, type, amount, description, category, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.ID,
		string(txn.Type),
		txn.Amount,
		txn.Description,
		txn.Category.Name,
		txn.Date.Format(dateLayout),
	)
	if err != nil {
		return common.NewStoreError(fmt.Sprintf("failed to insert transaction %s", txn.ID), err)
	}

	slog.Debug("transaction appended to SQLite", "id", txn.ID)
	return nil
}
