package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors the domain enum for DB storage.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
)

// Transaction is the persistence-layer representation of a ledger entry row.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	BankAccountID string          `db:"bank_account_id"`
	Type          TransactionType `db:"type"`
	Value         decimal.Decimal `db:"value"`
	CreatedAt     time.Time       `db:"created_at"`
}
