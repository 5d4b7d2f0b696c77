package dto

import (
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required,accountcode"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// AccountResponse defines the data returned for an account. NormalSide is
// derived from the type, never stored.
type AccountResponse struct {
	AccountID   string    `json:"accountID"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	AccountType string    `json:"accountType"`
	NormalSide  string    `json:"normalSide"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListAccountsResponse wraps a listing of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		NormalSide:  string(a.NormalSide()),
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
