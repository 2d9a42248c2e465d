package domain

import "github.com/shopspring/decimal"

// TaxType categorizes a tax code.
type TaxType string

const (
	TaxTypeGST         TaxType = "GST"
	TaxTypeWithholding TaxType = "WHT"
	TaxTypeIncome      TaxType = "INCOME"
)

// IsValid reports whether t is a recognised tax type.
func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypeGST, TaxTypeWithholding, TaxTypeIncome:
		return true
	}
	return false
}

// Well-known GST code values used when classifying lines into a return.
// These follow the standard Singapore IRAS categories.
const (
	GSTCodeStandardRated   = "SR" // Standard-rated supply (output tax applies)
	GSTCodeZeroRated       = "ZR" // Zero-rated supply
	GSTCodeExempt          = "ES" // Exempt supply
	GSTCodeTaxablePurchase = "TX" // Taxable purchase (input tax claimable)
	GSTCodeBlockedPurchase = "BL" // Taxable purchase, input tax not claimable
)

// TaxCode defines a tax treatment that journal lines can be tagged with.
// Rate edits never rewrite already-posted lines; lines snapshot the rate.
type TaxCode struct {
	Code            string          `json:"code"` // Primary key, e.g. "SR"
	Description     string          `json:"description"`
	TaxType         TaxType         `json:"taxType"`
	Rate            decimal.Decimal `json:"rate"`            // Percentage, non-negative
	AffectedAccount *string         `json:"affectedAccount"` // GL account code the tax posts against
	IsActive        bool            `json:"isActive"`
	AuditFields
}
