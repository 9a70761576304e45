package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrossi/soldi/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	store := newTestSQLiteStore(t)

	transactions, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestSQLiteStore_AppendAndLoad(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := testTransaction("id-1", model.TypeExpense, 25.0, "dinner", "Food", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	second := testTransaction("id-2", model.TypeIncome, 500.0, "freelance gig", "Work", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Insertion order is preserved.
	assert.Equal(t, "id-1", loaded[0].ID)
	assert.Equal(t, "id-2", loaded[1].ID)
	assert.Equal(t, model.TypeIncome, loaded[1].Type)
	assert.InDelta(t, 500.0, loaded[1].Amount, 1e-9)
	assert.True(t, second.Date.Equal(loaded[1].Date))
}

func TestSQLiteStore_SaveAllOverwrites(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	stale := testTransaction("old", model.TypeExpense, 1.0, "stale row", "Other", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Append(ctx, stale))

	fresh := []model.Transaction{
		testTransaction("id-1", model.TypeExpense, 10.0, "taxi", "Transport", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		testTransaction("id-2", model.TypeExpense, 60.0, "electricity", "Utilities", time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, store.SaveAll(ctx, fresh))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "id-1", loaded[0].ID)
	assert.Equal(t, "id-2", loaded[1].ID)
}

func TestSQLiteStore_DuplicateIDRejected(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	txn := testTransaction("dup", model.TypeExpense, 5.0, "snack", "Food", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Append(ctx, txn))

	err := store.Append(ctx, txn)
	require.Error(t, err, "transaction ids are unique")
}
