package domain_test

import (
	"testing"
	"time"

	"github.com/bcodes/bank_account_api/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewBankAccount(t *testing.T) {
	id := uuid.NewString()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	account := domain.NewBankAccount(id, "0001", domain.Savings, decimal.Zero, now)

	assert.Equal(t, id, account.ID)
	assert.Equal(t, "0001", account.Agency)
	assert.Equal(t, domain.Savings, account.Type)
	assert.True(t, account.Balance.IsZero())
	assert.True(t, account.IsActive)
	assert.Equal(t, now, account.CreatedAt)
	assert.Equal(t, now, account.UpdatedAt)
	assert.Zero(t, account.AccountNumber)
	assert.Empty(t, account.Transactions)
}
