package domain

import "time"

// AuditFields records who touched an entity and when. Every aggregate
// embeds it; the acting user comes from the request identity or "system".
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
