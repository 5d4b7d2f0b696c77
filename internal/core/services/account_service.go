package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/openledgerhq/gl_backend/internal/middleware"
)

// accountService owns the chart of accounts: account creation, lookup,
// listings, and soft deactivation.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new active account. The code must be unique and
// match the code format rule; the type must be one of the five recognized types.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsValidAccountCode(req.Code) {
		return nil, fmt.Errorf("%w: account code %q must be 1-32 characters of letters, digits, hyphen or underscore", apperrors.ErrValidation, req.Code)
	}
	accountType := domain.AccountType(req.AccountType)
	if !domain.IsValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: accountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %q already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// DeactivateAccount marks an account inactive. Deactivating an already
// inactive account is a no-op success; existing posted lines are untouched.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// GetAccountByID retrieves an account by its system-assigned ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its human-assigned code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by code", slog.String("error", err.Error()), slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// ListAccountsByType lists accounts of the given type, ordered by code.
func (s *accountService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if !domain.IsValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	accounts, err := s.accountRepo.ListAccountsByType(ctx, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by type: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListActiveAccounts lists all active accounts, ordered by code.
func (s *accountService) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
