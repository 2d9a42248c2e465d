package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTReturnStatus indicates the lifecycle state of a GST return.
type GSTReturnStatus string

const (
	GSTReturnDraft     GSTReturnStatus = "DRAFT"
	GSTReturnFinalized GSTReturnStatus = "FINALIZED"
)

// TaxCodeTotal carries the summed base and tax amounts of posted lines
// tagged with one tax code over a date range. Both sums are signed toward
// the credit side: supply codes accumulate positive, purchase codes
// negative, and reversal lines cancel their originals.
type TaxCodeTotal struct {
	TaxCode    string          `json:"taxCode"`
	BaseAmount decimal.Decimal `json:"baseAmount"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
}

// GSTReturn aggregates posted, tax-tagged journal lines over a filing period.
type GSTReturn struct {
	ReturnID    string    `json:"returnID"` // Primary key (UUID)
	ReturnNo    *string   `json:"returnNo"` // Document number, assigned at finalization
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	StandardRatedSupplies decimal.Decimal `json:"standardRatedSupplies"`
	ZeroRatedSupplies     decimal.Decimal `json:"zeroRatedSupplies"`
	ExemptSupplies        decimal.Decimal `json:"exemptSupplies"`
	TotalSupplies         decimal.Decimal `json:"totalSupplies"`
	TaxablePurchases      decimal.Decimal `json:"taxablePurchases"`
	OutputTax             decimal.Decimal `json:"outputTax"`
	InputTax              decimal.Decimal `json:"inputTax"`
	Adjustments           decimal.Decimal `json:"adjustments"`
	NetPayable            decimal.Decimal `json:"netPayable"` // output - input + adjustments

	Status            GSTReturnStatus `json:"status"`
	SubmissionRef     *string         `json:"submissionRef"`
	SubmissionDate    *time.Time      `json:"submissionDate"`
	SettlementEntryID *string         `json:"settlementEntryID"` // Journal entry created at finalization
	AuditFields
}
