package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Actor IDs are opaque strings supplied by the caller; this core performs no
// authorization itself.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
