package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary key (e.g. "SGD")
	Symbol        string `json:"symbol"`       // e.g. "$"
	Name          string `json:"name"`         // e.g. "Singapore Dollar"
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}

// MinorUnit returns the smallest representable amount in the currency,
// e.g. 0.01 for a two-decimal currency. Used as the tolerance when
// comparing report totals.
func (c Currency) MinorUnit() decimal.Decimal {
	return decimal.New(1, -c.DecimalPlaces)
}

// ExchangeRate is the rate from one currency to another effective on a date.
type ExchangeRate struct {
	RateID        string          `json:"rateID"` // Primary key (UUID)
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	AuditFields
}
