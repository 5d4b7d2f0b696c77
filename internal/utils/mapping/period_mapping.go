package mapping

import (
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/models"
)

// ToModelPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		FiscalYear:  d.FiscalYear,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      models.PeriodStatus(d.Status),
		ClosedAt:    d.ClosedAt,
		ClosedBy:    d.ClosedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		FiscalYear:  m.FiscalYear,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.PeriodStatus(m.Status),
		ClosedAt:    m.ClosedAt,
		ClosedBy:    m.ClosedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model FiscalPeriods to domain FiscalPeriods.
func ToDomainPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}
