package dto

import (
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest defines one line of a draft journal entry.
// Exactly one of debit/credit must be positive; the service enforces this.
type CreateEntryLineRequest struct {
	AccountCode  string           `json:"accountCode" binding:"required"`
	Description  string           `json:"description"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	TaxCode      *string          `json:"taxCode"`      // Optional; rate is snapshotted from the active tax code
	CurrencyCode *string          `json:"currencyCode"` // Optional original currency
	ExchangeRate *decimal.Decimal `json:"exchangeRate"` // Required when CurrencyCode differs from base
}

// CreateEntryRequest defines the data needed to create (or replace) a draft entry.
type CreateEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	SourceType  string                   `json:"sourceType"`
	SourceID    *string                  `json:"sourceID"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostEntryRequest carries the posting date for a draft entry.
type PostEntryRequest struct {
	PostingDate time.Time `json:"postingDate" binding:"required"`
}

// ReverseEntryRequest carries the reversal date and optional description.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	Description  string    `json:"description"`
}

// ListEntriesParams holds filters for listing journal entries.
type ListEntriesParams struct {
	Status    *domain.EntryStatus `form:"status"`
	FromDate  *time.Time          `form:"fromDate" time_format:"2006-01-02"`
	ToDate    *time.Time          `form:"toDate" time_format:"2006-01-02"`
	Limit     int                 `form:"limit"`
	NextToken *string             `form:"nextToken"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNo       int             `json:"lineNo"`
	AccountCode  string          `json:"accountCode"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	TaxCode      *string         `json:"taxCode"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	EntryNo          *string             `json:"entryNo"`
	EntryDate        time.Time           `json:"entryDate"`
	Description      string              `json:"description"`
	CurrencyCode     string              `json:"currencyCode"`
	Status           domain.EntryStatus  `json:"status"`
	SourceType       string              `json:"sourceType"`
	SourceID         *string             `json:"sourceID"`
	OriginalEntryID  *string             `json:"originalEntryID"`
	ReversingEntryID *string             `json:"reversingEntryID"`
	PostedAt         *time.Time          `json:"postedAt"`
	PostedBy         *string             `json:"postedBy"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
	Lines            []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a page of entries plus the next pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalLine to EntryLineResponse.
func ToEntryLineResponse(line *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       line.LineID,
		LineNo:       line.LineNo,
		AccountCode:  line.AccountCode,
		Description:  line.Description,
		Debit:        line.Debit,
		Credit:       line.Credit,
		TaxCode:      line.TaxCode,
		TaxRate:      line.TaxRate,
		TaxAmount:    line.TaxAmount,
		CurrencyCode: line.CurrencyCode,
		ExchangeRate: line.ExchangeRate,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNo:          e.EntryNo,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		CurrencyCode:     e.CurrencyCode,
		Status:           e.Status,
		SourceType:       e.SourceType,
		SourceID:         e.SourceID,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		PostedAt:         e.PostedAt,
		PostedBy:         e.PostedBy,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}
