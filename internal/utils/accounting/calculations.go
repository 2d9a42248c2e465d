package accounting

import (
	"fmt"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount converts a journal line into a signed movement for the given
// account type. The sign convention follows the account's normal balance:
//
//	DEBIT to ASSET/EXPENSE        -> positive
//	CREDIT to ASSET/EXPENSE       -> negative
//	DEBIT to LIABILITY/EQUITY/REVENUE  -> negative
//	CREDIT to LIABILITY/EQUITY/REVENUE -> positive
//
// This is used in both services and repositories so balance arithmetic stays
// consistent everywhere.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountCode)
	}
	amount := line.Amount()
	if accountType.NormalBalance() == domain.DebitBalance {
		if !line.IsDebit() {
			amount = amount.Neg()
		}
	} else {
		if line.IsDebit() {
			amount = amount.Neg()
		}
	}
	return amount, nil
}

// SignedNet computes debit-minus-credit (or credit-minus-debit) for raw
// column sums, honoring the account type's normal balance.
func SignedNet(debits, credits decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	if accountType.NormalBalance() == domain.DebitBalance {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// ColumnTotals sums the debit and credit sides of a set of lines.
func ColumnTotals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// CheckPrecision verifies that amount does not carry more decimal places than
// the currency allows.
func CheckPrecision(amount decimal.Decimal, decimalPlaces int32) bool {
	return amount.Equal(amount.Round(decimalPlaces))
}
