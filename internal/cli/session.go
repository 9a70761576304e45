package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mrossi/soldi/internal/ledger"
	"github.com/mrossi/soldi/internal/model"
)

const sessionDateLayout = "2006-01-02"

// Session runs the interactive numbered menu over the ledger service.
// It is thin glue: every operation delegates to the service and only
// rendering and input parsing happen here.
type Session struct {
	service *ledger.Service
	reader  *Reader
	writer  io.Writer
}

// NewSession creates an interactive session over the given service.
func NewSession(service *ledger.Service, input io.Reader, output io.Writer) *Session {
	return &Session{
		service: service,
		reader:  NewReader(input),
		writer:  output,
	}
}

// Run loops over the menu until the user quits, input ends, or the
// context is canceled. Validation and store errors are shown and the
// loop continues.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.writer, FormatTitle("soldi — personal ledger"))

	for {
		s.printMenu()

		line, err := s.reader.ReadLine(ctx)
		if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.writer)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read menu choice: %w", err)
		}

		choice, convErr := strconv.Atoi(line)
		if convErr != nil {
			fmt.Fprintln(s.writer, FormatWarning("please enter a number"))
			continue
		}

		var opErr error
		switch choice {
		case 1:
			opErr = s.addTransaction(ctx, model.TypeExpense)
		case 2:
			opErr = s.addTransaction(ctx, model.TypeIncome)
		case 3:
			s.listTransactions()
		case 4:
			s.showReports()
		case 5:
			opErr = s.manageCategories(ctx)
		case 6:
			opErr = s.service.SaveAll(ctx)
			if opErr == nil {
				fmt.Fprintln(s.writer, FormatSuccess("ledger saved"))
			}
		case 0:
			fmt.Fprintln(s.writer, SubtleStyle.Render("bye!"))
			return nil
		default:
			fmt.Fprintln(s.writer, FormatWarning("no such menu entry"))
		}

		if errors.Is(opErr, ErrInputCancelled) || errors.Is(opErr, io.EOF) {
			return nil
		}
		if opErr != nil {
			fmt.Fprintln(s.writer, FormatError(opErr.Error()))
			slog.Warn("session operation failed", "error", opErr)
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.writer)
	fmt.Fprintln(s.writer, TableHeaderStyle.Render("--- menu ---"))
	fmt.Fprintln(s.writer, "1. Add expense")
	fmt.Fprintln(s.writer, "2. Add income")
	fmt.Fprintln(s.writer, "3. Show transactions")
	fmt.Fprintln(s.writer, "4. Reports")
	fmt.Fprintln(s.writer, "5. Manage categories")
	fmt.Fprintln(s.writer, "6. Save")
	fmt.Fprintln(s.writer, "0. Quit")
	fmt.Fprint(s.writer, FormatPrompt("choice"))
}

func (s *Session) addTransaction(ctx context.Context, txType model.TransactionType) error {
	amount, err := s.promptAmount(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(s.writer, FormatPrompt("description"))
	description, err := s.reader.ReadLine(ctx)
	if err != nil {
		return err
	}

	category, err := s.chooseCategory(ctx)
	if err != nil {
		return err
	}

	date, err := s.promptDate(ctx)
	if err != nil {
		return err
	}

	var txn model.Transaction
	if txType == model.TypeExpense {
		txn, err = s.service.AddExpense(ctx, amount, description, category, date)
	} else {
		txn, err = s.service.AddIncome(ctx, amount, description, category, date)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(s.writer, FormatSuccess(fmt.Sprintf("%s of %.2f recorded in %s",
		txn.Type.DisplayName(), txn.Amount, txn.Category.Name)))
	return nil
}

func (s *Session) promptAmount(ctx context.Context) (float64, error) {
	fmt.Fprint(s.writer, FormatPrompt("amount"))
	line, err := s.reader.ReadLine(ctx)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", line)
	}
	return amount, nil
}

func (s *Session) promptDate(ctx context.Context) (time.Time, error) {
	fmt.Fprint(s.writer, FormatPrompt("date (YYYY-MM-DD, empty for today)"))
	line, err := s.reader.ReadLine(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if line == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(sessionDateLayout, line)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", line)
	}
	return date, nil
}

// chooseCategory shows the registry as a numbered list and re-prompts
// until the pick is valid. There is deliberately no silent fallback to
// the first category on a bad pick.
func (s *Session) chooseCategory(ctx context.Context) (model.Category, error) {
	categories := s.service.Categories()

	fmt.Fprintln(s.writer, SubtleStyle.Render("categories:"))
	for i, cat := range categories {
		fmt.Fprintf(s.writer, "  %d. %s — %s\n", i+1, cat.Name, SubtleStyle.Render(cat.Description))
	}

	for {
		fmt.Fprint(s.writer, FormatPrompt("category number"))
		line, err := s.reader.ReadLine(ctx)
		if err != nil {
			return model.Category{}, err
		}
		idx, convErr := strconv.Atoi(line)
		if convErr != nil || idx < 1 || idx > len(categories) {
			fmt.Fprintln(s.writer, FormatWarning(fmt.Sprintf("pick a number between 1 and %d", len(categories))))
			continue
		}
		return categories[idx-1], nil
	}
}

func (s *Session) listTransactions() {
	it := s.service.ListByDate()
	if it.Len() == 0 {
		fmt.Fprintln(s.writer, SubtleStyle.Render("no transactions yet"))
		return
	}

	fmt.Fprintln(s.writer, TableHeaderStyle.Render(fmt.Sprintf("%d transactions (newest first):", it.Len())))
	for it.HasNext() {
		txn := it.Next()
		amountStyle := ExpenseStyle
		sign := "-"
		if txn.Type == model.TypeIncome {
			amountStyle = IncomeStyle
			sign = "+"
		}
		fmt.Fprintf(s.writer, "%s  %s  %s  %s\n",
			txn.Date.Format(sessionDateLayout),
			amountStyle.Render(fmt.Sprintf("%s%9.2f", sign, txn.Amount)),
			txn.Category.Name,
			SubtleStyle.Render(txn.Description))
	}
}

func (s *Session) showReports() {
	totals := s.service.Totals()
	fmt.Fprintln(s.writer, TableHeaderStyle.Render(ChartIcon+" totals"))
	fmt.Fprintf(s.writer, "  income:   %s\n", IncomeStyle.Render(fmt.Sprintf("%.2f", totals.Income)))
	fmt.Fprintf(s.writer, "  expenses: %s\n", ExpenseStyle.Render(fmt.Sprintf("%.2f", totals.Expenses)))
	fmt.Fprintf(s.writer, "  balance:  %.2f\n", totals.Balance)

	summary := s.service.CategorySummary()
	if len(summary.ByCategory) == 0 {
		return
	}

	names := make([]string, 0, len(summary.ByCategory))
	for name := range summary.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(s.writer, TableHeaderStyle.Render(ChartIcon+" expenses by category"))
	for _, name := range names {
		fmt.Fprintf(s.writer, "  %-20s %10.2f\n", name, summary.ByCategory[name])
	}
}

func (s *Session) manageCategories(ctx context.Context) error {
	for _, cat := range s.service.Categories() {
		fmt.Fprintf(s.writer, "  %s — %s\n", cat.Name, SubtleStyle.Render(cat.Description))
	}

	fmt.Fprint(s.writer, FormatPrompt("new category name (empty to go back)"))
	name, err := s.reader.ReadLine(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return nil
	}

	fmt.Fprint(s.writer, FormatPrompt("description"))
	description, err := s.reader.ReadLine(ctx)
	if err != nil {
		return err
	}

	s.service.AddCategory(name, description)
	fmt.Fprintln(s.writer, FormatSuccess(fmt.Sprintf("category %q registered", name)))
	return nil
}
