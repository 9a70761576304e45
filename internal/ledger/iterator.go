package ledger

import (
	"sort"

	"github.com/mrossi/soldi/internal/model"
)

// DateIterator is a restartable, forward-only cursor over a fixed
// snapshot of transactions in descending date order (most recent
// first). Equal dates keep the snapshot's order. Mutating the live
// ledger after construction does not affect an existing iterator.
type DateIterator struct {
	transactions []model.Transaction
	position     int
}

// NewDateIterator copies the given transactions and sorts the copy by
// date descending.
func NewDateIterator(transactions []model.Transaction) *DateIterator {
	snapshot := make([]model.Transaction, len(transactions))
	copy(snapshot, transactions)

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Date.After(snapshot[j].Date)
	})

	return &DateIterator{transactions: snapshot}
}

// HasNext reports whether unread items remain.
func (it *DateIterator) HasNext() bool {
	return it.position < len(it.transactions)
}

// Next returns the next transaction and advances the cursor, or nil
// when the iterator is exhausted.
func (it *DateIterator) Next() *model.Transaction {
	if !it.HasNext() {
		return nil
	}
	txn := it.transactions[it.position]
	it.position++
	return &txn
}

// Reset returns the cursor to the start without re-sorting.
func (it *DateIterator) Reset() {
	it.position = 0
}

// Position returns the current cursor position.
func (it *DateIterator) Position() int {
	return it.position
}

// Len returns the number of transactions in the snapshot.
func (it *DateIterator) Len() int {
	return len(it.transactions)
}
