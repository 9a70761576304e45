package ledger

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mrossi/soldi/internal/model"
)

// Store is the durable persistence layer consumed by the service. The
// store holds no ledger state of its own; it is a codec plus file I/O.
type Store interface {
	// Load returns all persisted transactions. A missing backing file
	// is the expected first-run state and yields an empty slice.
	Load(ctx context.Context) ([]model.Transaction, error)
	// SaveAll overwrites the persisted set with the given transactions.
	SaveAll(ctx context.Context, transactions []model.Transaction) error
	// Append durably adds a single transaction.
	Append(ctx context.Context, txn model.Transaction) error
	// Close releases any resources held by the store.
	Close() error
}

// Service is the facade over the ledger. It exclusively owns the
// in-memory transaction list (append-only, insertion order) and the
// category registry, and routes every add through the factory before
// persisting it.
type Service struct {
	store        Store
	factory      *Factory
	categories   map[string]model.Category
	transactions []model.Transaction
}

// Option customizes service construction.
type Option func(*Service)

// WithClock overrides the source of "today" used for defaulted dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.factory = NewFactory(now)
	}
}

// NewService creates a service backed by the given store, seeds the
// default categories, and loads any previously persisted transactions.
// A load failure is logged and leaves the ledger empty rather than
// failing construction.
func NewService(ctx context.Context, store Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		factory:    NewFactory(nil),
		categories: make(map[string]model.Category),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seedDefaultCategories()

	loaded, err := store.Load(ctx)
	if err != nil {
		slog.Warn("could not load existing transactions, starting empty", "error", err)
	} else {
		s.transactions = append(s.transactions, loaded...)
	}

	slog.Info("ledger initialized",
		"transactions", len(s.transactions),
		"categories", len(s.categories))
	return s
}

func (s *Service) seedDefaultCategories() {
	defaults := []model.Category{
		model.NewCategory("Work", "Income from work and freelancing"),
		model.NewCategory("Housing", "Rent, mortgage, and home expenses"),
		model.NewCategory("Utilities", "Bills of all kinds"),
		model.NewCategory("Food", "Groceries and eating out"),
		model.NewCategory("Entertainment", "Fun and hobbies"),
		model.NewCategory("Salary", "Monthly salary"),
		model.NewCategory("Transport", "Car, fuel, public transport"),
		model.NewCategory("Other", "Everything else"),
	}
	for _, cat := range defaults {
		s.categories[cat.Key()] = cat
	}
}

// AddExpense validates and records an expense, appending it to the
// in-memory ledger and durably to the store. On a store failure the
// in-memory append has already happened; the two diverge until the
// next SaveAll. A zero date defaults to today.
func (s *Service) AddExpense(ctx context.Context, amount float64, description string, category model.Category, date time.Time) (model.Transaction, error) {
	txn, err := s.factory.Expense(amount, description, category, date)
	if err != nil {
		return model.Transaction{}, err
	}
	return txn, s.record(ctx, txn)
}

// AddIncome validates and records an income entry. Same durability
// semantics as AddExpense.
func (s *Service) AddIncome(ctx context.Context, amount float64, description string, category model.Category, date time.Time) (model.Transaction, error) {
	txn, err := s.factory.Income(amount, description, category, date)
	if err != nil {
		return model.Transaction{}, err
	}
	return txn, s.record(ctx, txn)
}

func (s *Service) record(ctx context.Context, txn model.Transaction) error {
	s.transactions = append(s.transactions, txn)
	if err := s.store.Append(ctx, txn); err != nil {
		return err
	}
	slog.Info("transaction recorded",
		"id", txn.ID,
		"type", txn.Type,
		"amount", txn.Amount,
		"category", txn.Category.Name)
	return nil
}

// ListByDate returns a fresh iterator over a snapshot of the current ledger.
func (s *Service) ListByDate() *DateIterator {
	return NewDateIterator(s.transactions)
}

// Transactions returns a copy of the ledger in insertion order.
func (s *Service) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Count returns the number of recorded transactions.
func (s *Service) Count() int {
	return len(s.transactions)
}

// Totals runs the totals aggregation over the live ledger.
func (s *Service) Totals() Totals {
	return CalculateTotals(s.transactions)
}

// CategorySummary runs the per-category expense aggregation over the
// live ledger.
func (s *Service) CategorySummary() CategorySummary {
	return CalculateCategorySummary(s.transactions)
}

// AddCategory inserts or replaces the registry entry for the name.
// Last write wins; there is no merge.
func (s *Service) AddCategory(name, description string) {
	s.categories[name] = model.NewCategory(name, description)
}

// Category looks up a registered category by name.
func (s *Service) Category(name string) (model.Category, bool) {
	cat, ok := s.categories[name]
	return cat, ok
}

// Categories returns the registered categories sorted by name.
func (s *Service) Categories() []model.Category {
	out := make([]model.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SaveAll flushes the entire in-memory ledger through the store's
// overwrite path.
func (s *Service) SaveAll(ctx context.Context) error {
	if err := s.store.SaveAll(ctx, s.transactions); err != nil {
		return err
	}
	slog.Info("ledger saved", "transactions", len(s.transactions))
	return nil
}
