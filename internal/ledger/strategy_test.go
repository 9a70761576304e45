package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/mrossi/soldi/internal/model"
)

func typedTransaction(txType model.TransactionType, amount float64, category string) model.Transaction {
	return model.Transaction{
		Type:     txType,
		Amount:   amount,
		Category: model.NewCategory(category, ""),
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateTotals(t *testing.T) {
	transactions := []model.Transaction{
		typedTransaction(model.TypeExpense, 100.0, "Food"),
		typedTransaction(model.TypeExpense, 150.0, "Transport"),
		typedTransaction(model.TypeIncome, 1000.0, "Salary"),
		typedTransaction(model.TypeIncome, 1000.0, "Salary"),
	}

	totals := CalculateTotals(transactions)

	if math.Abs(totals.Income-2000.0) > 1e-9 {
		t.Errorf("Income = %v, want 2000", totals.Income)
	}
	if math.Abs(totals.Expenses-250.0) > 1e-9 {
		t.Errorf("Expenses = %v, want 250", totals.Expenses)
	}
	if math.Abs(totals.Balance-1750.0) > 1e-9 {
		t.Errorf("Balance = %v, want 1750", totals.Balance)
	}
}

func TestCalculateTotals_Empty(t *testing.T) {
	totals := CalculateTotals(nil)
	if totals.Income != 0 || totals.Expenses != 0 || totals.Balance != 0 {
		t.Errorf("empty ledger must yield zero totals, got %+v", totals)
	}
}

func TestCalculateCategorySummary(t *testing.T) {
	transactions := []model.Transaction{
		typedTransaction(model.TypeExpense, 100.0, "Food"),
		typedTransaction(model.TypeExpense, 50.0, "Food"),
		typedTransaction(model.TypeExpense, 30.0, "Transport"),
		typedTransaction(model.TypeIncome, 1000.0, "Salary"),
	}

	summary := CalculateCategorySummary(transactions)

	if len(summary.ByCategory) != 2 {
		t.Fatalf("ByCategory has %d entries, want 2: %v", len(summary.ByCategory), summary.ByCategory)
	}
	if math.Abs(summary.ByCategory["Food"]-150.0) > 1e-9 {
		t.Errorf("Food = %v, want 150", summary.ByCategory["Food"])
	}
	if math.Abs(summary.ByCategory["Transport"]-30.0) > 1e-9 {
		t.Errorf("Transport = %v, want 30", summary.ByCategory["Transport"])
	}
	if _, ok := summary.ByCategory["Salary"]; ok {
		t.Error("income categories must not appear in the expense breakdown")
	}
}

func TestCalculateCategorySummary_IncomeSharingCategoryName(t *testing.T) {
	transactions := []model.Transaction{
		typedTransaction(model.TypeExpense, 20.0, "Other"),
		typedTransaction(model.TypeIncome, 500.0, "Other"),
	}

	summary := CalculateCategorySummary(transactions)

	if math.Abs(summary.ByCategory["Other"]-20.0) > 1e-9 {
		t.Errorf("Other = %v, want only the expense side (20)", summary.ByCategory["Other"])
	}
}

func TestStrategy_Description(t *testing.T) {
	if StrategyTotals.Description() == "" || StrategyCategories.Description() == "" {
		t.Error("built-in strategies must describe themselves")
	}
}

func TestStrategies_DoNotMutateInput(t *testing.T) {
	transactions := []model.Transaction{
		typedTransaction(model.TypeExpense, 10.0, "Food"),
	}
	before := transactions[0]

	CalculateTotals(transactions)
	CalculateCategorySummary(transactions)

	if transactions[0] != before {
		t.Error("strategies must not mutate their input")
	}
}
