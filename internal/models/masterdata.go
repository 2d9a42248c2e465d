package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalPeriod is the persistence-shaped representation of a fiscal period.
type FiscalPeriod struct {
	PeriodID  string    `db:"period_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsClosed  bool      `db:"is_closed"`
	AuditFields
}

// TaxCode is the persistence-shaped representation of a tax code.
type TaxCode struct {
	Code            string          `db:"code"`
	Description     string          `db:"description"`
	TaxType         string          `db:"tax_type"`
	Rate            decimal.Decimal `db:"rate"`
	AffectedAccount *string         `db:"affected_account"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}

// DocumentSequence is the persistence-shaped representation of a sequence row.
type DocumentSequence struct {
	Name      string `db:"name"`
	Prefix    string `db:"prefix"`
	NextValue int64  `db:"next_value"`
	PadWidth  int    `db:"pad_width"`
	Format    string `db:"format"`
	AuditFields
}

// Currency is the persistence-shaped representation of a currency.
type Currency struct {
	CurrencyCode  string `db:"currency_code"`
	Symbol        string `db:"symbol"`
	Name          string `db:"name"`
	DecimalPlaces int32  `db:"decimal_places"`
	AuditFields
}

// ExchangeRate is the persistence-shaped representation of an exchange rate.
type ExchangeRate struct {
	RateID        string          `db:"rate_id"`
	FromCurrency  string          `db:"from_currency"`
	ToCurrency    string          `db:"to_currency"`
	Rate          decimal.Decimal `db:"rate"`
	EffectiveDate time.Time       `db:"effective_date"`
	AuditFields
}

// GSTReturn is the persistence-shaped representation of a GST return.
type GSTReturn struct {
	ReturnID              string          `db:"return_id"`
	ReturnNo              *string         `db:"return_no"`
	PeriodStart           time.Time       `db:"period_start"`
	PeriodEnd             time.Time       `db:"period_end"`
	StandardRatedSupplies decimal.Decimal `db:"standard_rated_supplies"`
	ZeroRatedSupplies     decimal.Decimal `db:"zero_rated_supplies"`
	ExemptSupplies        decimal.Decimal `db:"exempt_supplies"`
	TotalSupplies         decimal.Decimal `db:"total_supplies"`
	TaxablePurchases      decimal.Decimal `db:"taxable_purchases"`
	OutputTax             decimal.Decimal `db:"output_tax"`
	InputTax              decimal.Decimal `db:"input_tax"`
	Adjustments           decimal.Decimal `db:"adjustments"`
	NetPayable            decimal.Decimal `db:"net_payable"`
	Status                string          `db:"status"`
	SubmissionRef         *string         `db:"submission_ref"`
	SubmissionDate        *time.Time      `db:"submission_date"`
	SettlementEntryID     *string         `db:"settlement_entry_id"`
	AuditFields
}
