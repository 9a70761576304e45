package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
	"github.com/mrossi/soldi/internal/model"
)

func expenseCmd() *cobra.Command {
	return addCmd(model.TypeExpense, "expense", "Record an expense")
}

func incomeCmd() *cobra.Command {
	return addCmd(model.TypeIncome, "income", "Record an income entry")
}

func addCmd(txType model.TransactionType, use, short string) *cobra.Command {
	var (
		categoryName string
		dateStr      string
	)

	cmd := &cobra.Command{
		Use:   use + " <amount> <description...>",
		Short: short,
		Long: short + `. The amount must be positive and the description
non-empty; the date defaults to today.

Examples:
  soldi ` + use + ` 12.50 lunch at the bar --category Food
  soldi ` + use + ` 80 monthly pass --category Transport --date 2024-03-01`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			description := strings.Join(args[1:], " ")

			var date time.Time
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
			}

			svc, store, err := newService(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := resolveCategory(svc, categoryName)

			var txn model.Transaction
			if txType == model.TypeExpense {
				txn, err = svc.AddExpense(ctx, amount, description, category, date)
			} else {
				txn, err = svc.AddIncome(ctx, amount, description, category, date)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s of %.2f recorded in %s (%s)",
				txn.Type.DisplayName(), txn.Amount, txn.Category.Name, txn.Date.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryName, "category", "c", "Other", "category name")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "transaction date (YYYY-MM-DD, default today)")

	return cmd
}
