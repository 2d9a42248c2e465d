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

// balanceService computes signed account balances from posted lines. Only
// POSTED entries contribute; a reversed entry still counts because its
// posted reversal cancels it line for line.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceReader
	accountSvc  portssvc.AccountSvcFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceReader, accountSvc portssvc.AccountSvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo: balanceRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// Balance returns the account's signed balance as of a date (inclusive).
// Accounts with no postings balance to zero.
func (s *balanceService) Balance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountSvc.GetAccountByCode(ctx, accountCode)
	if err != nil {
		return decimal.Zero, err
	}

	sums, err := s.balanceRepo.SumAccountColumns(ctx, accountCode, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account columns", "account_code", accountCode)
		return decimal.Zero, fmt.Errorf("failed to sum columns for account %s: %w", accountCode, err)
	}

	return accounting.SignedNet(sums.Debits, sums.Credits, account.AccountType), nil
}

// BalanceRange returns the opening balance (day before start), the signed
// movements within [start, end], and the closing balance.
func (s *balanceService) BalanceRange(ctx context.Context, accountCode string, start, end time.Time) (domain.BalanceRange, error) {
	account, err := s.accountSvc.GetAccountByCode(ctx, accountCode)
	if err != nil {
		return domain.BalanceRange{}, err
	}
	if end.Before(start) {
		return domain.BalanceRange{}, fmt.Errorf("range end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	openingSums, err := s.balanceRepo.SumAccountColumns(ctx, accountCode, start.AddDate(0, 0, -1))
	if err != nil {
		s.LogError(ctx, err, "Failed to sum opening columns", "account_code", accountCode)
		return domain.BalanceRange{}, fmt.Errorf("failed to sum opening columns for account %s: %w", accountCode, err)
	}
	opening := accounting.SignedNet(openingSums.Debits, openingSums.Credits, account.AccountType)

	rangeSums, err := s.balanceRepo.SumAccountColumnsRange(ctx, accountCode, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum range columns", "account_code", accountCode)
		return domain.BalanceRange{}, fmt.Errorf("failed to sum range columns for account %s: %w", accountCode, err)
	}
	movements := accounting.SignedNet(rangeSums.Debits, rangeSums.Credits, account.AccountType)

	return domain.BalanceRange{
		Opening:   opening,
		Movements: movements,
		Closing:   opening.Add(movements),
	}, nil
}

// RollupBalance returns the account's own balance plus the balances of all
// its descendants. The tree is walked iteratively; the children index is
// rebuilt per call so tree edits are honoured, and the cycle guard at write
// time keeps the walk finite.
func (s *balanceService) RollupBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	// Existence check up front so a bad code fails with NotFound rather
	// than a silent zero.
	if _, err := s.accountSvc.GetAccountByCode(ctx, accountCode); err != nil {
		return decimal.Zero, err
	}

	index, err := s.accountSvc.BuildChildrenIndex(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	stack := []string{accountCode}
	visited := make(map[string]bool)
	for len(stack) > 0 {
		code := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[code] {
			continue
		}
		visited[code] = true

		balance, err := s.Balance(ctx, code, asOf)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
		stack = append(stack, index[code]...)
	}
	return total, nil
}
