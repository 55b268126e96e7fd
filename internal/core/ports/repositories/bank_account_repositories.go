package repositories

import (
	"context"
	"time"

	"github.com/bcodes/bank_account_api/internal/core/domain"
	"github.com/bcodes/bank_account_api/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank account data.
type BankAccountReader interface {
	// FindBankAccountByID retrieves an account by its unique identifier,
	// including its ledger entries ordered by creation time ascending.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// FindAllBankAccounts retrieves accounts ordered by account number
	// ascending. A nil page means no pagination: all accounts, no metadata.
	FindAllBankAccounts(ctx context.Context, page *pagination.Page) (*domain.BankAccountList, error)
}

// BankAccountWriter defines write operations for bank account data.
type BankAccountWriter interface {
	// SaveBankAccount persists a new account and returns it with the
	// database-assigned account number.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) (*domain.BankAccount, error)

	// UpdateBankAccount applies a partial update to an existing account.
	UpdateBankAccount(ctx context.Context, bankAccountID string, changes domain.BankAccountChanges, now time.Time) (*domain.BankAccount, error)

	// DeactivateBankAccount marks an account as inactive. Deactivating an
	// already-inactive account is a no-op, not an error.
	DeactivateBankAccount(ctx context.Context, bankAccountID string, now time.Time) (*domain.BankAccount, error)
}

// BankAccountBalanceMutator defines the atomic balance mutations. Each call
// updates the balance, refreshes updated_at and appends the matching ledger
// entry as one persistence transaction: both succeed or both roll back.
type BankAccountBalanceMutator interface {
	// IncrementBalance atomically adds amount to the account balance and
	// appends a DEPOSIT ledger entry.
	IncrementBalance(ctx context.Context, bankAccountID string, amount decimal.Decimal, now time.Time) (*domain.BankAccount, error)

	// DecrementBalance atomically subtracts amount from the account balance
	// and appends a WITHDRAW ledger entry. Fails with ErrInsufficientFunds
	// if the subtraction would drive the balance negative; the check runs
	// inside the same atomic statement as the update.
	DecrementBalance(ctx context.Context, bankAccountID string, amount decimal.Decimal, now time.Time) (*domain.BankAccount, error)
}

// BankAccountPurger removes all account and ledger rows. Test-environment
// reset only, never reachable from the HTTP surface.
type BankAccountPurger interface {
	Clear(ctx context.Context) error
}

// BankAccountRepositoryFacade combines all bank-account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankAccountBalanceMutator
	BankAccountPurger
}
