package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
)

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive menu session",
		Long: `Run the classic numbered menu: add expenses and income, browse
transactions, view reports, and manage categories without leaving the
program. Ctrl-C or option 0 quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, store, err := newService(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return cli.NewSession(svc, os.Stdin, os.Stdout).Run(ctx)
		},
	}
}
