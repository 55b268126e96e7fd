package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry records a deposit or a withdrawal.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
)

// Transaction is an immutable ledger entry recording a single balance mutation
// on one bank account. It is created atomically with the mutation itself.
type Transaction struct {
	ID            string          `json:"id"`            // Primary Key (UUID)
	BankAccountID string          `json:"bankAccountId"` // FK -> bank_accounts.bank_account_id
	Type          TransactionType `json:"type"`          // DEPOSIT or WITHDRAW
	Value         decimal.Decimal `json:"value"`         // Always positive
	CreatedAt     time.Time       `json:"createdAt"`
}
