package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountType mirrors the domain enum for DB storage.
type BankAccountType string

const (
	Checking BankAccountType = "CHECKING"
	Savings  BankAccountType = "SAVINGS"
)

// BankAccount is the persistence-layer representation of a bank account row.
type BankAccount struct {
	BankAccountID string          `db:"bank_account_id"`
	AccountNumber int64           `db:"account_number"` // BIGSERIAL, assigned by the database
	Agency        string          `db:"agency"`
	Type          BankAccountType `db:"type"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
