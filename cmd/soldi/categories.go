package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known categories",
		Long: `Display the category registry. The defaults are always present;
ad hoc categories used on the command line are accepted without being
registered.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, store, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Description"))

			for _, cat := range svc.Categories() {
				desc := cat.Description
				if desc == "" {
					desc = cli.SubtleStyle.Render("(no description)")
				}
				fmt.Fprintf(w, "%s\t%s\n", cat.Name, desc)
			}

			return nil
		},
	}
}
