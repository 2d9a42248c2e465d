package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrepareGSTReturnRequest defines the filing period to aggregate.
type PrepareGSTReturnRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// SaveGSTReturnRequest carries a prepared return draft for persistence.
// Totals are re-derivable but persisted as prepared so the filed figures
// match what the user reviewed.
type SaveGSTReturnRequest struct {
	ReturnID              *string         `json:"returnID"` // Present when re-saving an existing draft
	PeriodStart           time.Time       `json:"periodStart" binding:"required"`
	PeriodEnd             time.Time       `json:"periodEnd" binding:"required"`
	StandardRatedSupplies decimal.Decimal `json:"standardRatedSupplies"`
	ZeroRatedSupplies     decimal.Decimal `json:"zeroRatedSupplies"`
	ExemptSupplies        decimal.Decimal `json:"exemptSupplies"`
	TaxablePurchases      decimal.Decimal `json:"taxablePurchases"`
	OutputTax             decimal.Decimal `json:"outputTax"`
	InputTax              decimal.Decimal `json:"inputTax"`
	Adjustments           decimal.Decimal `json:"adjustments"`
}

// FinalizeGSTReturnRequest carries the filing confirmation details.
type FinalizeGSTReturnRequest struct {
	SubmissionRef  string    `json:"submissionRef" binding:"required"`
	SubmissionDate time.Time `json:"submissionDate" binding:"required"`
}
