package domain

import "time"

// PeriodStatus indicates the lifecycle state of a fiscal period.
// The only transition is Open -> Closed; there is no reopen.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is a non-overlapping date range gating which entries may be
// posted. Dates are date-granular; StartDate and EndDate are inclusive.
type FiscalPeriod struct {
	PeriodID   string       `json:"periodID"`
	FiscalYear int          `json:"fiscalYear"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	Status     PeriodStatus `json:"status"`
	ClosedAt   *time.Time   `json:"closedAt,omitempty"`
	ClosedBy   *string      `json:"closedBy,omitempty"`
	AuditFields
}

// Contains reports whether d falls inside the period's inclusive date range.
// Only the calendar date matters, not the time of day.
func (p FiscalPeriod) Contains(d time.Time) bool {
	day := truncateToDay(d)
	return !day.Before(truncateToDay(p.StartDate)) && !day.After(truncateToDay(p.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
