package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of multiple lines.
// Draft entries may be edited or discarded; posting makes the entry permanent
// and balance-affecting; a posted entry may be reversed exactly once.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`          // Primary key (UUID)
	EntryNo          *string     `json:"entryNo"`          // Document number, assigned at posting time
	EntryDate        time.Time   `json:"entryDate"`        // Date the event occurred
	Description      string      `json:"description"`      // User description
	CurrencyCode     string      `json:"currencyCode"`     // Base currency of the entry
	Status           EntryStatus `json:"status"`           // DRAFT, POSTED, REVERSED
	SourceType       string      `json:"sourceType"`       // Originating document type, e.g. "MANUAL", "GST_SETTLEMENT"
	SourceID         *string     `json:"sourceID"`         // Originating document reference
	OriginalEntryID  *string     `json:"originalEntryID"`  // Set on a reversal entry, points to the entry it reverses
	ReversingEntryID *string     `json:"reversingEntryID"` // Set on a reversed entry, points to its reversal
	PostedAt         *time.Time  `json:"postedAt"`
	PostedBy         *string     `json:"postedBy"`
	AuditFields

	Lines []JournalLine `json:"lines,omitempty"` // Ordered by LineNo; often loaded separately
}

// IsReversal reports whether the entry was created to reverse another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}

// JournalLine is a single debit or credit against one account within an entry.
// Exactly one of Debit/Credit is non-zero and both are non-negative. Amounts
// are stored in the base currency; when the line originated in a foreign
// currency the original currency and exchange rate are retained as metadata.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary key (UUID)
	EntryID     string          `json:"entryID"` // FK -> JournalEntry
	LineNo      int             `json:"lineNo"`  // 1-based ordering within the entry
	AccountCode string          `json:"accountCode"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`

	// Tax metadata is snapshotted when the line is written so later tax-code
	// rate edits never change historical reports.
	TaxCode   *string         `json:"taxCode"`
	TaxRate   decimal.Decimal `json:"taxRate"`   // Percentage at snapshot time
	TaxAmount decimal.Decimal `json:"taxAmount"` // Base amount * rate, quantized to currency precision

	CurrencyCode string          `json:"currencyCode"` // Original currency of the line
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Rate to base currency; 1 for base-currency lines
	AuditFields
}

// Amount returns the magnitude of the line, whichever side carries it.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}
