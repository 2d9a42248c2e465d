package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// accountService owns the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// detectParentCycle walks up the parent chain starting at parentCode and
// fails when it reaches accountCode again. The walk is bounded by the chart
// size so a pre-existing bad link cannot loop forever.
func (s *accountService) detectParentCycle(ctx context.Context, accountCode string, parentCode string) error {
	seen := map[string]bool{accountCode: true}
	current := parentCode
	for current != "" {
		if seen[current] {
			return fmt.Errorf("%w: account %s would become its own ancestor via %s", apperrors.ErrAccountCycle, accountCode, parentCode)
		}
		seen[current] = true

		parent, err := s.accountRepo.FindAccountByCode(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, current)
			}
			return fmt.Errorf("failed to resolve parent chain at %s: %w", current, err)
		}
		if parent.ParentCode == nil {
			return nil
		}
		current = *parent.ParentCode
	}
	return nil
}

// CreateAccount adds a new account to the chart.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	if req.ParentCode != nil && *req.ParentCode != "" {
		if *req.ParentCode == req.Code {
			return nil, fmt.Errorf("%w: account %s cannot be its own parent", apperrors.ErrAccountCycle, req.Code)
		}
		parent, err := s.accountRepo.FindAccountByCode(ctx, *req.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *req.ParentCode)
			}
			s.LogError(ctx, err, "Failed to fetch parent account", slog.String("parent_code", *req.ParentCode))
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		// Rollups only make sense within one statement section.
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent %s has type %s, child has type %s", apperrors.ErrValidation, parent.Code, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Category:    req.Category,
		ParentCode:  req.ParentCode,
		IsActive:    true,
		IsControl:   req.IsControl,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("code", account.Code), slog.String("type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByCode retrieves a single account.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes retrieves multiple accounts keyed by code.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find accounts by codes")
		}
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts returns the chart ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount changes an account's mutable fields. Parent changes re-run
// the cycle check before anything is written.
func (s *accountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Category != nil {
		account.Category = *req.Category
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsControl != nil {
		account.IsControl = *req.IsControl
	}
	if req.ParentCode != nil {
		if *req.ParentCode == "" {
			account.ParentCode = nil
		} else {
			if err := s.detectParentCycle(ctx, code, *req.ParentCode); err != nil {
				return nil, err
			}
			account.ParentCode = req.ParentCode
		}
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("code", code))
		return nil, fmt.Errorf("failed to update account %s: %w", code, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("code", code))
	return account, nil
}

// DeactivateAccount hides the account from selection lists. Posted history
// referencing the account remains visible.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err != nil {
		return fmt.Errorf("failed to find account %s: %w", code, err)
	}

	if err := s.accountRepo.SetAccountActive(ctx, code, false, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("code", code))
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("code", code))
	return nil
}

// BuildChildrenIndex builds the parent -> children index for rollups. It is
// rebuilt on every call so tree edits are picked up immediately.
func (s *accountService) BuildChildrenIndex(ctx context.Context) (domain.ChildrenIndex, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for children index")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	index := make(domain.ChildrenIndex)
	for _, acc := range accounts {
		if acc.ParentCode != nil && *acc.ParentCode != "" {
			index[*acc.ParentCode] = append(index[*acc.ParentCode], acc.Code)
		}
	}
	return index, nil
}
