package services

import (
	"context"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/dto"
)

// AccountReaderSvc defines read operations on the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by its system-assigned ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its human-assigned code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccountsByType lists accounts of the given type, ordered by code.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListActiveAccounts lists all active accounts, ordered by code.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations on the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount registers a new active account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)

	// DeactivateAccount soft-deactivates an account. Idempotent: deactivating
	// an already inactive account succeeds without effect.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
