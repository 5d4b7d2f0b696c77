package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openledgerhq/gl_backend/internal/core/services"
)

// NewRepositories wires all pgx-backed repositories against a shared pool.
func NewRepositories(dbPool *pgxpool.Pool) services.Repositories {
	return services.Repositories{
		Account:   newPgxAccountRepository(dbPool),
		Period:    newPgxPeriodRepository(dbPool),
		Entry:     newPgxEntryRepository(dbPool),
		Reporting: newReportingRepository(dbPool),
	}
}
