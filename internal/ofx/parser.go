// Package ofx parses OFX/QFX bank statements into candidate donations.
// Small organizations often reconcile gifts straight from their operating
// account's bank feed; only credit-side transactions are kept, since
// debits can never be incoming gifts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
)

// Gift is a credit transaction parsed from a bank statement, before it has
// been matched to a donor.
type Gift struct {
	PostedAt  time.Time
	FiTID     string
	PayerName string
	AccountID string
	Amount    float64
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the credit transactions as
// candidate gifts.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]Gift, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var gifts []Gift
	var bankStmts, skippedDebits int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		accountID := string(stmt.BankAcctFrom.AcctID)

		for _, ofxTx := range stmt.BankTranList.Transactions {
			gift, ok := p.convertTransaction(ofxTx, accountID)
			if !ok {
				skippedDebits++
				continue
			}
			gifts = append(gifts, gift)
		}
	}

	slog.Info("Parsed OFX file",
		"gifts", len(gifts),
		"bank_statements", bankStmts,
		"skipped_debits", skippedDebits)

	return gifts, nil
}

// convertTransaction converts an OFX transaction to a candidate gift.
// Debits are rejected.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (Gift, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount <= 0 {
		return Gift{}, false
	}

	return Gift{
		FiTID:     string(ofxTx.FiTID),
		PostedAt:  ofxTx.DtPosted.Time,
		PayerName: p.extractPayerName(ofxTx),
		AccountID: accountID,
		Amount:    amount,
	}, true
}

// extractPayerName tries to get a clean payer name from OFX data.
func (p *Parser) extractPayerName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))

	// Sometimes MEMO carries the actual payer when NAME is a generic
	// processor label
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	return name
}

// isGenericDescription reports whether a transaction name is a payment
// processor label rather than a payer name.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEPOSIT",
		"ACH CREDIT",
		"DIRECT DEP",
		"ELECTRONIC DEPOSIT",
		"TRANSFER",
	}
	upper := strings.ToUpper(name)
	for _, g := range generic {
		if strings.Contains(upper, g) {
			return true
		}
	}
	return false
}
