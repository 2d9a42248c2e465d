package dto

import (
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest defines the data needed to register a fiscal period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		IsClosed:  p.IsClosed,
	}
}

// CreateTaxCodeRequest defines the data needed to register a tax code.
type CreateTaxCodeRequest struct {
	Code            string          `json:"code" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	TaxType         domain.TaxType  `json:"taxType" binding:"required,oneof=GST WHT INCOME"`
	Rate            decimal.Decimal `json:"rate"`
	AffectedAccount *string         `json:"affectedAccount"`
}

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,len=3"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	DecimalPlaces int32  `json:"decimalPlaces" binding:"min=0,max=8"`
}

// CreateExchangeRateRequest defines the data needed to register an exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrency  string          `json:"fromCurrency" binding:"required,len=3"`
	ToCurrency    string          `json:"toCurrency" binding:"required,len=3"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required"`
}
