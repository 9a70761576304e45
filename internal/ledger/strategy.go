package ledger

import "github.com/mrossi/soldi/internal/model"

// Strategy identifies one of the built-in aggregations. The set is
// closed: new aggregations are added here, not plugged in at runtime.
type Strategy string

const (
	// StrategyTotals sums income and expenses over the whole ledger.
	StrategyTotals Strategy = "totals"
	// StrategyCategories breaks expenses down by category name.
	StrategyCategories Strategy = "categories"
)

// Description returns the human-facing summary of what the strategy computes.
func (s Strategy) Description() string {
	switch s {
	case StrategyTotals:
		return "Total income, total expenses, and balance"
	case StrategyCategories:
		return "Expenses grouped by category"
	default:
		return string(s)
	}
}

// Totals is the result of the totals aggregation.
type Totals struct {
	Income   float64
	Expenses float64
	Balance  float64
}

// CategorySummary maps category names to summed expense amounts.
// Income is excluded entirely, even when it shares a category name
// with an expense.
type CategorySummary struct {
	ByCategory map[string]float64
}

// CalculateTotals sums amounts over the full input: income into
// Income, expenses into Expenses, Balance is their difference. Pure
// function of the input; the transactions are not touched.
func CalculateTotals(transactions []model.Transaction) Totals {
	var totals Totals
	for _, txn := range transactions {
		switch txn.Type {
		case model.TypeIncome:
			totals.Income += txn.Amount
		case model.TypeExpense:
			totals.Expenses += txn.Amount
		}
	}
	totals.Balance = totals.Income - totals.Expenses
	return totals
}

// CalculateCategorySummary sums expense amounts grouped by category name.
func CalculateCategorySummary(transactions []model.Transaction) CategorySummary {
	summary := CategorySummary{ByCategory: make(map[string]float64)}
	for _, txn := range transactions {
		if txn.Type != model.TypeExpense {
			continue
		}
		summary.ByCategory[txn.Category.Name] += txn.Amount
	}
	return summary
}
