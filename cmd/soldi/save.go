package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
)

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Rewrite the ledger file from scratch",
		Long: `Load the ledger and flush it back through the overwrite path.
Rows that no longer parse are dropped in the process, so this also
compacts a file with corrupt lines.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, store, err := newService(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := svc.SaveAll(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("ledger saved (%d transactions)", svc.Count())))
			return nil
		},
	}
}
