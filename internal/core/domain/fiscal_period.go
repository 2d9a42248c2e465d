package domain

import "time"

// FiscalPeriod is a bounded date range that can be closed to prevent posting.
type FiscalPeriod struct {
	PeriodID  string    `json:"periodID"` // Primary key (UUID)
	Name      string    `json:"name"`     // e.g. "FY2024-01"
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether d falls inside the period (inclusive bounds,
// compared at day granularity).
func (p FiscalPeriod) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(p.StartDate.Truncate(24*time.Hour)) && !day.After(p.EndDate.Truncate(24*time.Hour))
}

// Overlaps reports whether the two periods share at least one day.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !p.StartDate.After(other.EndDate) && !other.StartDate.After(p.EndDate)
}
