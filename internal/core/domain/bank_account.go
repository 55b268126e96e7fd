package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountType defines the product type of a bank account.
type BankAccountType string

const (
	Checking BankAccountType = "CHECKING"
	Savings  BankAccountType = "SAVINGS"
)

// BankAccount represents a bank account within the core domain.
// This is the primary representation used by services.
type BankAccount struct {
	ID            string          `json:"id"`                     // Primary Key (UUID), immutable
	AccountNumber int64           `json:"accountNumber"`          // Sequential display number, assigned by the persistence layer
	Agency        string          `json:"agency"`                 // Branch identifier
	Type          BankAccountType `json:"type"`                   // CHECKING or SAVINGS
	Balance       decimal.Decimal `json:"balance"`                // Mutated only through deposit/withdraw
	IsActive      bool            `json:"isActive"`               // Soft delete flag
	CreatedAt     time.Time       `json:"createdAt"`              //
	UpdatedAt     time.Time       `json:"updatedAt"`              // Refreshed on every mutating operation
	Transactions  []Transaction   `json:"transactions,omitempty"` // Ledger, populated on single-account fetch
}

// BankAccountChanges carries the mutable fields for a partial update.
// Nil pointers mean "leave unchanged".
type BankAccountChanges struct {
	Agency *string
	Type   *BankAccountType
}

// BankAccountList is the result of a list query. The metadata pointers are nil
// when the query was not paginated.
type BankAccountList struct {
	BankAccounts []BankAccount
	Page         *int
	PageSize     *int
	Total        *int
	PageCount    *int
}

// NewBankAccount builds a fully populated account snapshot. Identity and clock
// are supplied by the caller so tests can make them deterministic. The account
// number is left zero; the persistence layer assigns it exactly once on save.
func NewBankAccount(id string, agency string, accountType BankAccountType, balance decimal.Decimal, now time.Time) BankAccount {
	return BankAccount{
		ID:        id,
		Agency:    agency,
		Type:      accountType,
		Balance:   balance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
