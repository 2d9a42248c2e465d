package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the persistence boundary.
type EntryStatus string

// JournalEntry is the persistence-shaped representation of a journal entry header.
type JournalEntry struct {
	EntryID          string      `db:"entry_id"`
	EntryNo          *string     `db:"entry_no"`
	EntryDate        time.Time   `db:"entry_date"`
	Description      string      `db:"description"`
	CurrencyCode     string      `db:"currency_code"`
	Status           EntryStatus `db:"status"`
	SourceType       string      `db:"source_type"`
	SourceID         *string     `db:"source_id"`
	OriginalEntryID  *string     `db:"original_entry_id"`
	ReversingEntryID *string     `db:"reversing_entry_id"`
	PostedAt         *time.Time  `db:"posted_at"`
	PostedBy         *string     `db:"posted_by"`
	AuditFields
}

// JournalLine is the persistence-shaped representation of a journal line.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	LineNo       int             `db:"line_no"`
	AccountCode  string          `db:"account_code"`
	Description  string          `db:"description"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	TaxCode      *string         `db:"tax_code"`
	TaxRate      decimal.Decimal `db:"tax_rate"`
	TaxAmount    decimal.Decimal `db:"tax_amount"`
	CurrencyCode string          `db:"currency_code"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	AuditFields
}
