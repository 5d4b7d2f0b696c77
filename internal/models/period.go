package models

import "time"

// PeriodStatus indicates the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is the database row shape for a fiscal period.
type FiscalPeriod struct {
	PeriodID   string       `db:"period_id"`
	FiscalYear int          `db:"fiscal_year"`
	StartDate  time.Time    `db:"start_date"`
	EndDate    time.Time    `db:"end_date"`
	Status     PeriodStatus `db:"status"`
	ClosedAt   *time.Time   `db:"closed_at"`
	ClosedBy   *string      `db:"closed_by"`
	AuditFields
}
