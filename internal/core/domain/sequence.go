package domain

import (
	"fmt"
	"strings"
)

// Well-known sequence names registered by migration.
const (
	SequenceJournalEntry = "journal_entry"
	SequenceGSTReturn    = "gst_return"
)

// DocumentSequence issues strictly increasing document numbers for one
// document family. Issued values are never reused; gaps are acceptable.
type DocumentSequence struct {
	Name      string `json:"name"`   // Primary key, e.g. "journal_entry"
	Prefix    string `json:"prefix"` // e.g. "JE"
	NextValue int64  `json:"nextValue"`
	PadWidth  int    `json:"padWidth"` // Zero-pad width of the numeric token
	Format    string `json:"format"`   // Template, e.g. "{PREFIX}{VALUE}"
	AuditFields
}

// FormatValue renders a numeric value using the sequence's template.
func (s DocumentSequence) FormatValue(value int64) string {
	numeric := fmt.Sprintf("%0*d", s.PadWidth, value)
	out := s.Format
	if out == "" {
		out = "{PREFIX}{VALUE}"
	}
	out = strings.ReplaceAll(out, "{PREFIX}", s.Prefix)
	out = strings.ReplaceAll(out, "{VALUE}", numeric)
	return out
}
