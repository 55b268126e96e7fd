package mapping

import (
	"github.com/bcodes/bank_account_api/internal/core/domain"
	"github.com/bcodes/bank_account_api/internal/models"
)

// ToModelBankAccount converts a domain.BankAccount to its DB representation.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.ID,
		AccountNumber: d.AccountNumber,
		Agency:        d.Agency,
		Type:          models.BankAccountType(d.Type),
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainBankAccount converts a DB row back to the domain representation.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		ID:            m.BankAccountID,
		AccountNumber: m.AccountNumber,
		Agency:        m.Agency,
		Type:          domain.BankAccountType(m.Type),
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainTransaction converts a ledger entry row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:            m.TransactionID,
		BankAccountID: m.BankAccountID,
		Type:          domain.TransactionType(m.Type),
		Value:         m.Value,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of ledger entry rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
