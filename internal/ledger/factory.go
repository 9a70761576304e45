// Package ledger implements the transaction engine: validated
// construction, the in-memory ledger with its category registry,
// date-ordered traversal, and the built-in aggregations.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrossi/soldi/internal/common"
	"github.com/mrossi/soldi/internal/model"
)

// maxDescriptionLen is the longest description accepted for a transaction.
const maxDescriptionLen = 255

// Factory builds validated transactions. All construction invariants
// live here; nothing else in the codebase creates a Transaction from
// user input directly.
type Factory struct {
	now func() time.Time
}

// NewFactory creates a factory using the given clock for defaulted
// dates. A nil clock falls back to time.Now.
func NewFactory(now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{now: now}
}

// Expense builds an EXPENSE transaction. A zero date defaults to today.
func (f *Factory) Expense(amount float64, description string, category model.Category, date time.Time) (model.Transaction, error) {
	return f.build(model.TypeExpense, amount, description, category, date)
}

// Income builds an INCOME transaction. A zero date defaults to today.
func (f *Factory) Income(amount float64, description string, category model.Category, date time.Time) (model.Transaction, error) {
	return f.build(model.TypeIncome, amount, description, category, date)
}

func (f *Factory) build(txType model.TransactionType, amount float64, description string, category model.Category, date time.Time) (model.Transaction, error) {
	if err := validate(amount, description, category); err != nil {
		return model.Transaction{}, err
	}

	if date.IsZero() {
		date = f.now()
	}
	// Calendar date only, no time component.
	date = truncateToDay(date)

	return model.Transaction{
		ID:          uuid.New().String(),
		Type:        txType,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}, nil
}

// validate checks the construction invariants in order and returns a
// ValidationError for the first violated rule.
func validate(amount float64, description string, category model.Category) error {
	if amount <= 0 {
		return common.NewValidationError("amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return common.NewValidationError("description cannot be empty")
	}
	if len(description) > maxDescriptionLen {
		return common.NewValidationError(fmt.Sprintf("description cannot exceed %d characters", maxDescriptionLen))
	}
	// Only presence is checked, not registry membership: callers may
	// construct ad hoc categories that never appear in the registry.
	if category.Name == "" {
		return common.NewValidationError("category is required")
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
