package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine is one {account, balance} leaf in a statement section.
type ReportLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// ReportSection groups report lines under a semantic heading with a total.
type ReportSection struct {
	Title string          `json:"title"`
	Lines []ReportLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// BalanceSheetReport is the renderer-agnostic balance sheet document.
type BalanceSheetReport struct {
	AsOf                   time.Time       `json:"asOf"`
	CurrencyCode           string          `json:"currencyCode"`
	Assets                 ReportSection   `json:"assets"`
	Liabilities            ReportSection   `json:"liabilities"`
	Equity                 ReportSection   `json:"equity"`
	TotalAssets            decimal.Decimal `json:"totalAssets"`
	TotalLiabilitiesEquity decimal.Decimal `json:"totalLiabilitiesEquity"`
	IsBalanced             bool            `json:"isBalanced"`
}

// ProfitLossReport is the renderer-agnostic profit & loss document.
type ProfitLossReport struct {
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	CurrencyCode string          `json:"currencyCode"`
	Revenue      ReportSection   `json:"revenue"`
	Expenses     ReportSection   `json:"expenses"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// TrialBalanceRow is a single row in a trial balance report: the account's
// balance placed in the debit or credit column according to its sign.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists active accounts with non-zero balances as of a date.
type TrialBalanceReport struct {
	AsOf         time.Time         `json:"asOf"`
	CurrencyCode string            `json:"currencyCode"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// GeneralLedgerRow is one posted line affecting the account, with a running balance.
type GeneralLedgerRow struct {
	EntryDate      time.Time       `json:"entryDate"`
	EntryNo        string          `json:"entryNo"`
	LineNo         int             `json:"lineNo"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is the ledger of a single account over a date range.
// Opening and closing balances are summary fields separate from the rows.
type GeneralLedgerReport struct {
	AccountCode    string             `json:"accountCode"`
	AccountName    string             `json:"accountName"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	CurrencyCode   string             `json:"currencyCode"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Rows           []GeneralLedgerRow `json:"rows"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// BalanceRange carries the result of a ranged balance query.
type BalanceRange struct {
	Opening   decimal.Decimal `json:"opening"`
	Movements decimal.Decimal `json:"movements"`
	Closing   decimal.Decimal `json:"closing"`
}
