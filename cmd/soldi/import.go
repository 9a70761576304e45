package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mrossi/soldi/internal/cli"
	"github.com/mrossi/soldi/internal/ofx"
)

func importCmd() *cobra.Command {
	var (
		dryRun       bool
		categoryName string
	)

	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import transactions from OFX/QFX bank exports",
		Long: `Import transactions from OFX or QFX files exported from your bank.
Debits become expenses and credits become income. Records sharing a
bank reference id are imported once.

Examples:
  soldi import ~/Downloads/statement_jan.qfx
  soldi import ~/Downloads/*.ofx --category Other
  soldi import statement.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var files []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, statErr := os.Stat(pattern); statErr == nil {
						files = append(files, pattern)
					} else {
						slog.Warn("no files match pattern", "pattern", pattern)
					}
				} else {
					files = append(files, matches...)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := ofx.NewParser()
			seen := make(map[string]bool)
			var records []ofx.Record

			for _, path := range files {
				f, err := os.Open(path)
				if err != nil {
					slog.Error("failed to open file", "file", path, "error", err)
					continue
				}
				parsed, err := parser.Parse(f)
				_ = f.Close()
				if err != nil {
					slog.Error("failed to parse OFX file", "file", path, "error", err)
					continue
				}

				added := 0
				for _, rec := range parsed {
					if rec.RefID != "" && seen[rec.RefID] {
						continue
					}
					seen[rec.RefID] = true
					records = append(records, rec)
					added++
				}
				slog.Info("processed file",
					"file", filepath.Base(path),
					"found", len(parsed),
					"added", added)
			}

			if len(records) == 0 {
				fmt.Println(cli.FormatWarning("no transactions found in any file"))
				return nil
			}

			if dryRun {
				fmt.Println(cli.FormatTitle(fmt.Sprintf("Dry run: %d transactions would be imported", len(records))))
				for _, rec := range records {
					fmt.Printf("  %s  %9.2f  %s\n", rec.Date.Format("2006-01-02"), rec.Amount, rec.Description)
				}
				return nil
			}

			svc, store, err := newService(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := resolveCategory(svc, categoryName)

			bar := progressbar.NewOptions(len(records),
				progressbar.OptionSetDescription("importing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			imported, skipped := 0, 0
			for _, rec := range records {
				_ = bar.Add(1)

				description := rec.Description
				if description == "" {
					description = "imported " + rec.RefID
				}

				var addErr error
				if rec.Amount < 0 {
					_, addErr = svc.AddExpense(ctx, math.Abs(rec.Amount), description, category, rec.Date)
				} else {
					_, addErr = svc.AddIncome(ctx, rec.Amount, description, category, rec.Date)
				}
				if addErr != nil {
					slog.Warn("skipping record", "ref_id", rec.RefID, "error", addErr)
					skipped++
					continue
				}
				imported++
			}
			_ = bar.Finish()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("imported %d transactions (%d skipped)", imported, skipped)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "Other", "category for imported transactions")

	return cmd
}
