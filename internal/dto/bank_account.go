package dto

import (
	"time"

	"github.com/bcodes/bank_account_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to open a new bank account.
type CreateBankAccountRequest struct {
	Agency string                 `json:"agency" binding:"required"`
	Type   domain.BankAccountType `json:"type" binding:"required,bankaccounttype"`
}

// UpdateBankAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBankAccountRequest struct {
	Agency *string                 `json:"agency"`
	Type   *domain.BankAccountType `json:"type" binding:"omitempty,bankaccounttype"`
}

// BalanceOperationRequest carries the amount for a deposit or withdrawal.
type BalanceOperationRequest struct {
	Value decimal.Decimal `json:"value" binding:"required"`
}

// ListBankAccountsParams defines query parameters for listing accounts.
// Both must be present for the result to be paginated.
type ListBankAccountsParams struct {
	Page     *int `form:"page" binding:"omitempty,min=1"`
	PageSize *int `form:"pageSize" binding:"omitempty,min=1"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	ID            string                 `json:"id"`
	BankAccountID string                 `json:"bankAccountId"`
	Type          domain.TransactionType `json:"type"`
	Value         decimal.Decimal        `json:"value"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// BankAccountResponse defines the data returned for a bank account.
// Mirrors domain.BankAccount.
type BankAccountResponse struct {
	ID            string                 `json:"id"`
	AccountNumber int64                  `json:"accountNumber"`
	Agency        string                 `json:"agency"`
	Type          domain.BankAccountType `json:"type"`
	Balance       decimal.Decimal        `json:"balance"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Transactions  []TransactionResponse  `json:"transactions,omitempty"`
}

// ListBankAccountsResponse wraps the list of accounts. The pagination metadata
// fields are omitted from the payload entirely when the request was not
// paginated, never serialized as zero or null.
type ListBankAccountsResponse struct {
	BankAccounts []BankAccountResponse `json:"bankAccounts"`
	Page         *int                  `json:"page,omitempty"`
	PageSize     *int                  `json:"pageSize,omitempty"`
	Total        *int                  `json:"total,omitempty"`
	PageCount    *int                  `json:"pageCount,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID,
		BankAccountID: txn.BankAccountID,
		Type:          txn.Type,
		Value:         txn.Value,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToBankAccountResponse converts a domain.BankAccount to its DTO.
func ToBankAccountResponse(acc *domain.BankAccount) BankAccountResponse {
	resp := BankAccountResponse{
		ID:            acc.ID,
		AccountNumber: acc.AccountNumber,
		Agency:        acc.Agency,
		Type:          acc.Type,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
	if len(acc.Transactions) > 0 {
		resp.Transactions = make([]TransactionResponse, len(acc.Transactions))
		for i, txn := range acc.Transactions {
			resp.Transactions[i] = ToTransactionResponse(txn)
		}
	}
	return resp
}

// ToListBankAccountsResponse converts a domain.BankAccountList to its DTO,
// carrying the pagination metadata through untouched.
func ToListBankAccountsResponse(list *domain.BankAccountList) ListBankAccountsResponse {
	accounts := make([]BankAccountResponse, len(list.BankAccounts))
	for i, acc := range list.BankAccounts {
		accounts[i] = ToBankAccountResponse(&acc)
	}
	return ListBankAccountsResponse{
		BankAccounts: accounts,
		Page:         list.Page,
		PageSize:     list.PageSize,
		Total:        list.Total,
		PageCount:    list.PageCount,
	}
}
