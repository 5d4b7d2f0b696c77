package repositories

import (
	"context"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
)

// AccountReader defines read operations for chart of accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its system-assigned ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human-assigned code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByType retrieves all accounts of a type, ordered by code.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListActiveAccounts retrieves all active accounts, ordered by code.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart of accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account. Returns ErrDuplicate when the code
	// collides with an existing account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive. Deactivating an already
	// inactive account is a no-op success. Returns ErrNotFound when absent.
	DeactivateAccount(ctx context.Context, accountID string, actorID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
