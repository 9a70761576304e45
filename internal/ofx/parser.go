// Package ofx parses OFX/QFX bank exports into ledger import records.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
)

// Record is one bank transaction as found in an OFX file. Amount keeps
// the bank's sign convention: negative for debits, positive for
// credits. RefID is the bank's FITID, used for deduplication.
type Record struct {
	Date        time.Time
	RefID       string
	Description string
	Account     string
	Amount      float64
}

// Parser reads OFX/QFX files.
type Parser struct{}

// NewParser creates an OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes common formatting issues in real-world OFX files
// before handing them to ofxgo.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case (INFO, WARN, ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML-style exports drop the closing angle bracket on tags
	// that sit alone on a line.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse reads an OFX/QFX document and returns its transactions.
func (p *Parser) Parse(reader io.Reader) ([]Record, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var records []Record

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		account := string(stmt.BankAcctFrom.AcctID)
		for _, txn := range stmt.BankTranList.Transactions {
			records = append(records, p.convert(txn, account))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		account := string(stmt.CCAcctFrom.AcctID)
		for _, txn := range stmt.BankTranList.Transactions {
			records = append(records, p.convert(txn, account))
		}
	}

	slog.Info("parsed OFX file",
		"transactions", len(records),
		"bank_statements", len(resp.Bank),
		"cc_statements", len(resp.CreditCard))

	return records, nil
}

func (p *Parser) convert(txn ofxgo.Transaction, account string) Record {
	amount, _ := txn.TrnAmt.Float64()

	description := strings.TrimSpace(string(txn.Name))
	if txn.Payee != nil && txn.Payee.Name != "" {
		description = strings.TrimSpace(string(txn.Payee.Name))
	}
	if description == "" {
		description = strings.TrimSpace(string(txn.Memo))
	}

	return Record{
		Date:        txn.DtPosted.Time,
		RefID:       string(txn.FiTID),
		Description: description,
		Account:     account,
		Amount:      amount,
	}
}
