package services

import (
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
)

// Container bundles the four core services for handler wiring.
type Container struct {
	Account   portssvc.AccountSvcFacade
	Period    portssvc.PeriodSvcFacade
	Journal   portssvc.JournalSvcFacade
	Reporting portssvc.ReportingSvcFacade
}

// Repositories is the set of persistence ports the services need.
type Repositories struct {
	Account   portsrepo.AccountRepositoryFacade
	Period    portsrepo.PeriodRepositoryFacade
	Entry     portsrepo.EntryRepositoryFacade
	Reporting portsrepo.ReportingRepository
}

// NewContainer wires the services against the given repositories. publisher
// may be nil to disable domain notifications.
func NewContainer(repos Repositories, publisher portssvc.EventPublisher) *Container {
	return &Container{
		Account:   NewAccountService(repos.Account),
		Period:    NewPeriodService(repos.Period, publisher),
		Journal:   NewJournalService(repos.Entry, repos.Account, repos.Period, publisher),
		Reporting: NewReportingService(repos.Reporting),
	}
}
