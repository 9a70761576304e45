package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
	"github.com/mrossi/soldi/internal/ledger"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate reports over the ledger",
	}

	cmd.AddCommand(totalsCmd())
	cmd.AddCommand(categorySummaryCmd())

	return cmd
}

func totalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: ledger.StrategyTotals.Description(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, store, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			totals := svc.Totals()

			fmt.Println(cli.FormatTitle("Totals"))
			fmt.Printf("  income:   %s\n", cli.IncomeStyle.Render(fmt.Sprintf("%10.2f", totals.Income)))
			fmt.Printf("  expenses: %s\n", cli.ExpenseStyle.Render(fmt.Sprintf("%10.2f", totals.Expenses)))
			fmt.Printf("  balance:  %10.2f\n", totals.Balance)
			return nil
		},
	}
}

func categorySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: ledger.StrategyCategories.Description(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, store, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary := svc.CategorySummary()
			if len(summary.ByCategory) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses recorded yet."))
				return nil
			}

			// Largest spend first, names break ties.
			names := make([]string, 0, len(summary.ByCategory))
			for name := range summary.ByCategory {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				a, b := summary.ByCategory[names[i]], summary.ByCategory[names[j]]
				if a != b {
					return a > b
				}
				return names[i] < names[j]
			})

			fmt.Println(cli.FormatTitle("Expenses by category"))
			for _, name := range names {
				fmt.Printf("  %-20s %10.2f\n", name, summary.ByCategory[name])
			}
			return nil
		},
	}
}
