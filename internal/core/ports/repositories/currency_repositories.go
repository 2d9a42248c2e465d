package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// CurrencyRepositoryFacade persists currency masterdata.
type CurrencyRepositoryFacade interface {
	// SaveCurrency inserts a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency definition.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies returns all currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepositoryFacade persists exchange rate masterdata.
type ExchangeRateRepositoryFacade interface {
	// SaveExchangeRate inserts a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindEffectiveRate returns the latest rate from one currency to another
	// effective on or before the given date.
	FindEffectiveRate(ctx context.Context, from, to string, onDate time.Time) (*domain.ExchangeRate, error)
}
