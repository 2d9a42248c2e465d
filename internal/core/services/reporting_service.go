package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/utils/accounting"
)

// reportingService composes financial statements from the chart of accounts
// and posted-line aggregations. Reports are plain data structures; renderers
// never re-derive totals.
type reportingService struct {
	BaseService
	balanceRepo  portsrepo.BalanceReader
	accountSvc   portssvc.AccountSvcFacade
	balanceSvc   portssvc.BalanceSvcFacade
	baseCurrency string
	baseDecimals int32
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	balanceRepo portsrepo.BalanceReader,
	accountSvc portssvc.AccountSvcFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	baseCurrency string,
	baseDecimals int32,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		balanceRepo:  balanceRepo,
		accountSvc:   accountSvc,
		balanceSvc:   balanceSvc,
		baseCurrency: baseCurrency,
		baseDecimals: baseDecimals,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// tolerance is the largest absolute difference still reported as balanced:
// one minor unit of the base currency.
func (s *reportingService) tolerance() decimal.Decimal {
	return decimal.New(1, -s.baseDecimals)
}

// includeInReport applies the statement section inclusion rule: inactive
// accounts are excluded unless they still carry a non-zero balance, active
// accounts appear once anything has been posted to them.
func includeInReport(account domain.Account, balance decimal.Decimal, hasPostings bool) bool {
	if !balance.IsZero() {
		return true
	}
	return account.IsActive && hasPostings
}

// signedBalances resolves every account's signed balance from raw column
// sums. Accounts absent from the sums map have never been posted to.
func signedBalances(accounts []domain.Account, sums map[string]portsrepo.ColumnSums) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		cs, ok := sums[acc.Code]
		if !ok {
			balances[acc.Code] = decimal.Zero
			continue
		}
		balances[acc.Code] = accounting.SignedNet(cs.Debits, cs.Credits, acc.AccountType)
	}
	return balances
}

func buildSection(title string, accounts []domain.Account, accountType domain.AccountType, balances map[string]decimal.Decimal, sums map[string]portsrepo.ColumnSums) domain.ReportSection {
	section := domain.ReportSection{Title: title, Total: decimal.Zero}
	for _, acc := range accounts {
		if acc.AccountType != accountType {
			continue
		}
		balance := balances[acc.Code]
		_, hasPostings := sums[acc.Code]
		if !includeInReport(acc, balance, hasPostings) {
			continue
		}
		section.Lines = append(section.Lines, domain.ReportLine{
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Balance:     balance,
		})
		section.Total = section.Total.Add(balance)
	}
	return section
}

// BalanceSheet generates the balance sheet as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, false)
	if err != nil {
		return nil, err
	}
	sums, err := s.balanceRepo.SumAllAccountColumns(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account columns for balance sheet")
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	balances := signedBalances(accounts, sums)

	report := &domain.BalanceSheetReport{
		AsOf:         asOf,
		CurrencyCode: s.baseCurrency,
		Assets:       buildSection("Assets", accounts, domain.Asset, balances, sums),
		Liabilities:  buildSection("Liabilities", accounts, domain.Liability, balances, sums),
		Equity:       buildSection("Equity", accounts, domain.Equity, balances, sums),
	}
	report.TotalAssets = report.Assets.Total
	report.TotalLiabilitiesEquity = report.Liabilities.Total.Add(report.Equity.Total)
	report.IsBalanced = report.TotalAssets.Sub(report.TotalLiabilitiesEquity).Abs().LessThanOrEqual(s.tolerance())
	return report, nil
}

// ProfitAndLoss generates the profit and loss statement over a date range.
func (s *reportingService) ProfitAndLoss(ctx context.Context, start, end time.Time) (*domain.ProfitLossReport, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	accounts, err := s.accountSvc.ListAccounts(ctx, false)
	if err != nil {
		return nil, err
	}
	sums, err := s.balanceRepo.SumAllAccountColumnsRange(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account columns for profit and loss")
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	balances := signedBalances(accounts, sums)

	report := &domain.ProfitLossReport{
		StartDate:    start,
		EndDate:      end,
		CurrencyCode: s.baseCurrency,
		Revenue:      buildSection("Revenue", accounts, domain.Revenue, balances, sums),
		Expenses:     buildSection("Expenses", accounts, domain.Expense, balances, sums),
	}
	report.NetProfit = report.Revenue.Total.Sub(report.Expenses.Total)
	return report, nil
}

// TrialBalance generates the trial balance as of a date. Each account's
// balance lands in the debit or credit column according to its sign on the
// account's normal side.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, false)
	if err != nil {
		return nil, err
	}
	sums, err := s.balanceRepo.SumAllAccountColumns(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account columns for trial balance")
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	balances := signedBalances(accounts, sums)

	report := &domain.TrialBalanceReport{
		AsOf:         asOf,
		CurrencyCode: s.baseCurrency,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, acc := range accounts {
		balance := balances[acc.Code]
		// A trial balance lists only accounts with something to prove; a
		// balance that nets to zero contributes nothing to either column.
		if balance.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountCode: acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		// A positive signed balance sits on the account's normal side; a
		// negative one flips to the opposite column.
		debitNormal := acc.AccountType.NormalBalance() == domain.DebitBalance
		switch {
		case balance.IsPositive() && debitNormal, balance.IsNegative() && !debitNormal:
			row.Debit = balance.Abs()
		case !balance.IsZero():
			row.Credit = balance.Abs()
		}

		report.Rows = append(report.Rows, row)
		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
	}

	report.IsBalanced = report.TotalDebits.Sub(report.TotalCredits).Abs().LessThanOrEqual(s.tolerance())
	return report, nil
}

// GeneralLedger generates a single account's ledger over a date range. The
// running balance threads from the range's opening balance through each row
// in entry date, entry number, line number order.
func (s *reportingService) GeneralLedger(ctx context.Context, accountCode string, start, end time.Time) (*domain.GeneralLedgerReport, error) {
	account, err := s.accountSvc.GetAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	rng, err := s.balanceSvc.BalanceRange(ctx, accountCode, start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.balanceRepo.ListPostedLinesForAccount(ctx, accountCode, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted lines for general ledger", "account_code", accountCode)
		return nil, fmt.Errorf("failed to list posted lines for account %s: %w", accountCode, err)
	}

	running := rng.Opening
	for i := range rows {
		movement := accounting.SignedNet(rows[i].Debit, rows[i].Credit, account.AccountType)
		running = running.Add(movement)
		rows[i].RunningBalance = running
	}

	return &domain.GeneralLedgerReport{
		AccountCode:    accountCode,
		AccountName:    account.Name,
		StartDate:      start,
		EndDate:        end,
		CurrencyCode:   s.baseCurrency,
		OpeningBalance: rng.Opening,
		Rows:           rows,
		ClosingBalance: rng.Closing,
	}, nil
}
