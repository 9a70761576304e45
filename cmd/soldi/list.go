package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
	"github.com/mrossi/soldi/internal/model"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, store, err := newService(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			it := svc.ListByDate()
			if it.Len() == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'soldi expense' or 'soldi income' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Description"))

			for it.HasNext() {
				txn := it.Next()
				amount := cli.ExpenseStyle.Render(fmt.Sprintf("-%.2f", txn.Amount))
				if txn.Type == model.TypeIncome {
					amount = cli.IncomeStyle.Render(fmt.Sprintf("+%.2f", txn.Amount))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.Date.Format("2006-01-02"),
					txn.Type.DisplayName(),
					amount,
					txn.Category.Name,
					txn.Description)
			}

			return nil
		},
	}
}
