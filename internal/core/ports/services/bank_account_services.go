package services

import (
	"context"

	"github.com/bcodes/bank_account_api/internal/core/domain"
	"github.com/bcodes/bank_account_api/internal/dto"
	"github.com/shopspring/decimal"
)

// BankAccountReaderSvc defines read operations for bank account data.
type BankAccountReaderSvc interface {
	// FindBankAccount retrieves a specific account, with its ledger entries.
	FindBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves accounts ordered by account number.
	// page and pageSize must either both be present or both absent; a
	// partial pair is treated as no pagination.
	ListBankAccounts(ctx context.Context, page, pageSize *int) (*domain.BankAccountList, error)
}

// BankAccountWriterSvc defines lifecycle operations for bank accounts.
type BankAccountWriterSvc interface {
	// CreateBankAccount opens a new account with a zero balance.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)

	// UpdateBankAccount applies a partial update to an existing account.
	UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error)

	// DeactivateBankAccount marks an account as inactive.
	DeactivateBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
}

// BankAccountBalanceSvc defines the balance mutations.
type BankAccountBalanceSvc interface {
	// DepositOnBankAccount adds a positive amount to the account balance.
	DepositOnBankAccount(ctx context.Context, bankAccountID string, amount decimal.Decimal) (*domain.BankAccount, error)

	// WithdrawFromBankAccount subtracts a positive amount from the account
	// balance, never past zero.
	WithdrawFromBankAccount(ctx context.Context, bankAccountID string, amount decimal.Decimal) (*domain.BankAccount, error)
}

// BankAccountSvcFacade combines all bank-account service interfaces.
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
	BankAccountBalanceSvc
}

// ServiceContainer aggregates the services handed to the HTTP layer.
type ServiceContainer struct {
	BankAccount BankAccountSvcFacade
}
