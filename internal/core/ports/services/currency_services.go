package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// CurrencySvcFacade owns currency masterdata. The configured base currency's
// decimal places drive precision validation and report tolerances.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrency retrieves a currency definition.
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies returns all currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateSvcFacade owns exchange rate masterdata used to carry
// foreign-currency metadata on journal lines.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate registers a rate effective from a date.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// GetEffectiveRate returns the rate effective on or before a date.
	GetEffectiveRate(ctx context.Context, from, to string, onDate time.Time) (*domain.ExchangeRate, error)
}
