// Package model defines the core entities of the ledger: transactions,
// categories, and transaction types.
package model

import (
	"fmt"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
// The set is closed: there are no other variants.
type TransactionType string

const (
	// TypeIncome marks a transaction that adds to the balance.
	TypeIncome TransactionType = "INCOME"
	// TypeExpense marks a transaction that subtracts from the balance.
	TypeExpense TransactionType = "EXPENSE"
)

// DisplayName returns the human-facing label for the type.
func (t TransactionType) DisplayName() string {
	switch t {
	case TypeIncome:
		return "Income"
	case TypeExpense:
		return "Expense"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single dated income or expense record. Identity is
// the ID alone: two transactions with identical fields but different
// IDs are distinct records. Transactions are never mutated once built.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string
	Category    Category
	Type        TransactionType
	Amount      float64
}

// Equal reports whether two transactions are the same record.
func (t Transaction) Equal(other Transaction) bool {
	return t.ID == other.ID
}

func (t Transaction) String() string {
	return fmt.Sprintf("Transaction{id=%s, type=%s, amount=%.2f, description=%q, category=%s, date=%s}",
		t.ID, t.Type, t.Amount, t.Description, t.Category.Name, t.Date.Format("2006-01-02"))
}
