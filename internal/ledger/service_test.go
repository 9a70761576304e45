package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrossi/soldi/internal/common"
	"github.com/mrossi/soldi/internal/model"
	"github.com/mrossi/soldi/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewCSVStore(filepath.Join(t.TempDir(), "transactions.csv"))
	require.NoError(t, err)
	return NewService(context.Background(), store)
}

func TestService_DefaultCategories(t *testing.T) {
	svc := newTestService(t)

	categories := svc.Categories()
	assert.Len(t, categories, 8)

	for _, name := range []string{"Work", "Housing", "Utilities", "Food", "Entertainment", "Salary", "Transport", "Other"} {
		_, ok := svc.Category(name)
		assert.True(t, ok, "default category %q missing", name)
	}
}

func TestService_AddAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.csv")

	store, err := storage.NewCSVStore(path)
	require.NoError(t, err)
	svc := NewService(ctx, store)

	food, _ := svc.Category("Food")
	salary, _ := svc.Category("Salary")

	_, err = svc.AddExpense(ctx, 42.0, "groceries", food, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, 1800.0, "march salary", salary, time.Date(2024, 3, 27, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Count())

	// Every add is immediately durable: a second service over the same
	// file sees both records without an explicit save.
	store2, err := storage.NewCSVStore(path)
	require.NoError(t, err)
	svc2 := NewService(ctx, store2)
	assert.Equal(t, 2, svc2.Count())
}

func TestService_AddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	food, _ := svc.Category("Food")

	_, err := svc.AddExpense(ctx, -1, "negative", food, time.Time{})
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, 0, svc.Count(), "a rejected add must not touch the ledger")
}

func TestService_ListByDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	other, _ := svc.Category("Other")

	_, err := svc.AddExpense(ctx, 1, "oldest", other, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, 2, "newest", other, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, 3, "middle", other, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	it := svc.ListByDate()
	require.Equal(t, 3, it.Len())
	assert.Equal(t, "newest", it.Next().Description)
	assert.Equal(t, "middle", it.Next().Description)
	assert.Equal(t, "oldest", it.Next().Description)

	// The iterator is a snapshot: adds after construction stay invisible.
	_, err = svc.AddExpense(ctx, 4, "later", other, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	it.Reset()
	assert.Equal(t, 3, it.Len())
}

func TestService_Aggregations(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	food, _ := svc.Category("Food")
	salary, _ := svc.Category("Salary")

	_, err := svc.AddExpense(ctx, 100, "restaurant", food, time.Time{})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, 50, "groceries", food, time.Time{})
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, 1000, "salary", salary, time.Time{})
	require.NoError(t, err)

	totals := svc.Totals()
	assert.InDelta(t, 1000.0, totals.Income, 1e-9)
	assert.InDelta(t, 150.0, totals.Expenses, 1e-9)
	assert.InDelta(t, 850.0, totals.Balance, 1e-9)

	summary := svc.CategorySummary()
	assert.InDelta(t, 150.0, summary.ByCategory["Food"], 1e-9)
	_, hasSalary := summary.ByCategory["Salary"]
	assert.False(t, hasSalary)
}

func TestService_AddCategoryLastWriteWins(t *testing.T) {
	svc := newTestService(t)

	svc.AddCategory("Pets", "Food and vet bills")
	svc.AddCategory("Pets", "Everything for the cat")

	cat, ok := svc.Category("Pets")
	require.True(t, ok)
	assert.Equal(t, "Everything for the cat", cat.Description)
	assert.Len(t, svc.Categories(), 9)
}

func TestService_SaveAll(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	store, err := storage.NewCSVStore(path)
	require.NoError(t, err)
	svc := NewService(ctx, store)

	other, _ := svc.Category("Other")
	_, err = svc.AddExpense(ctx, 5, "snack", other, time.Time{})
	require.NoError(t, err)

	require.NoError(t, svc.SaveAll(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

// failingStore simulates an unreadable or unwritable backing file.
type failingStore struct {
	loadErr   error
	appendErr error
}

func (f *failingStore) Load(context.Context) ([]model.Transaction, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return nil, nil
}

func (f *failingStore) SaveAll(context.Context, []model.Transaction) error { return nil }

func (f *failingStore) Append(context.Context, model.Transaction) error { return f.appendErr }

func (f *failingStore) Close() error { return nil }

func TestService_LoadFailureLeavesEmptyLedger(t *testing.T) {
	store := &failingStore{loadErr: common.NewStoreError("disk on fire", errors.New("io error"))}

	svc := NewService(context.Background(), store)
	assert.Equal(t, 0, svc.Count(), "a load failure must not fail construction")
}

func TestService_AppendFailureKeepsInMemoryRecord(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{appendErr: common.NewStoreError("disk full", errors.New("io error"))}
	svc := NewService(ctx, store)

	other := model.NewCategory("Other", "")
	_, err := svc.AddExpense(ctx, 5, "snack", other, time.Time{})
	require.Error(t, err)
	assert.True(t, common.IsStore(err))

	// The in-memory append happened before the durable one; the two
	// stores stay divergent until the next SaveAll.
	assert.Equal(t, 1, svc.Count())
}

func TestService_ClockInjection(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewCSVStore(filepath.Join(t.TempDir(), "transactions.csv"))
	require.NoError(t, err)

	fixed := time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)
	svc := NewService(ctx, store, WithClock(func() time.Time { return fixed }))

	other, _ := svc.Category("Other")
	txn, err := svc.AddExpense(ctx, 30, "presents", other, time.Time{})
	require.NoError(t, err)
	assert.True(t, txn.Date.Equal(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)))
}
