package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bcodes/bank_account_api/internal/apperrors"
	"github.com/bcodes/bank_account_api/internal/core/domain"
	portsrepo "github.com/bcodes/bank_account_api/internal/core/ports/repositories"
	portssvc "github.com/bcodes/bank_account_api/internal/core/ports/services"
	"github.com/bcodes/bank_account_api/internal/dto"
	"github.com/bcodes/bank_account_api/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bankAccountService is the sole holder of the account business rules. It
// depends only on the repository port, never on transport or persistence types.
type bankAccountService struct {
	BaseService
	repo  portsrepo.BankAccountRepositoryFacade
	newID func() string
	now   func() time.Time
}

// BankAccountServiceOption is a functional option for configuring the service.
type BankAccountServiceOption func(*bankAccountService)

// WithIDGenerator replaces the account/transaction ID generator, mainly so
// tests can make identity deterministic.
func WithIDGenerator(gen func() string) BankAccountServiceOption {
	return func(s *bankAccountService) {
		s.newID = gen
	}
}

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) BankAccountServiceOption {
	return func(s *bankAccountService) {
		s.now = now
	}
}

// NewBankAccountService creates the account management service with the
// provided options.
func NewBankAccountService(repo portsrepo.BankAccountRepositoryFacade, options ...BankAccountServiceOption) portssvc.BankAccountSvcFacade {
	svc := &bankAccountService{
		repo:  repo,
		newID: uuid.NewString,
		now:   time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure bankAccountService implements the BankAccountSvcFacade interface
var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount opens a new account with a zero balance. Uniqueness or
// persistence failures propagate unchanged from the repository.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	account := domain.NewBankAccount(s.newID(), req.Agency, req.Type, decimal.Zero, s.now())

	saved, err := s.repo.SaveBankAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save bank account",
			slog.String("bank_account_id", account.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created successfully",
		slog.String("bank_account_id", saved.ID),
		slog.Int64("account_number", saved.AccountNumber))
	return saved, nil
}

// UpdateBankAccount applies a partial update. A missing account surfaces as
// ErrNotFound from the repository; it is not re-validated here.
func (s *bankAccountService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	changes := domain.BankAccountChanges{
		Agency: req.Agency,
		Type:   req.Type,
	}

	updated, err := s.repo.UpdateBankAccount(ctx, bankAccountID, changes, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update bank account",
				slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Bank account updated successfully",
		slog.String("bank_account_id", bankAccountID))
	return updated, nil
}

// DeactivateBankAccount marks the account inactive. Deactivating an account
// that is already inactive succeeds and leaves it inactive.
func (s *bankAccountService) DeactivateBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.repo.DeactivateBankAccount(ctx, bankAccountID, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate bank account",
				slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Bank account deactivated successfully",
		slog.String("bank_account_id", bankAccountID))
	return account, nil
}

// FindBankAccount retrieves one account with its ledger entries.
func (s *bankAccountService) FindBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.repo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank account",
				slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}

	return account, nil
}

// ListBankAccounts retrieves accounts ordered by account number. A partial
// page/pageSize pair is treated as no pagination.
func (s *bankAccountService) ListBankAccounts(ctx context.Context, page, pageSize *int) (*domain.BankAccountList, error) {
	list, err := s.repo.FindAllBankAccounts(ctx, pagination.Resolve(page, pageSize))
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, err
	}

	if list.BankAccounts == nil {
		list.BankAccounts = []domain.BankAccount{}
	}

	s.LogDebug(ctx, "Bank accounts listed successfully",
		slog.Int("count", len(list.BankAccounts)))
	return list, nil
}

// DepositOnBankAccount adds amount to the account balance and records a
// DEPOSIT ledger entry. The repository is never invoked for a non-positive
// amount.
func (s *bankAccountService) DepositOnBankAccount(ctx context.Context, bankAccountID string, amount decimal.Decimal) (*domain.BankAccount, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: the amount to be deposited must be greater than zero", apperrors.ErrInvalidAmount)
	}

	account, err := s.repo.IncrementBalance(ctx, bankAccountID, amount, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deposit on bank account",
				slog.String("bank_account_id", bankAccountID),
				slog.String("amount", amount.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Deposit completed",
		slog.String("bank_account_id", bankAccountID),
		slog.String("amount", amount.String()))
	return account, nil
}

// WithdrawFromBankAccount subtracts amount from the account balance and
// records a WITHDRAW ledger entry. The account is loaded first so a missing
// account surfaces before amount validation. The balance pre-check reads a
// snapshot; the repository's conditional decrement is what actually keeps the
// balance from going negative under concurrent withdrawals.
func (s *bankAccountService) WithdrawFromBankAccount(ctx context.Context, bankAccountID string, amount decimal.Decimal) (*domain.BankAccount, error) {
	current, err := s.FindBankAccount(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	if err := validateWithdrawAmount(amount, current.Balance); err != nil {
		return nil, err
	}

	account, err := s.repo.DecrementBalance(ctx, bankAccountID, amount, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to withdraw from bank account",
				slog.String("bank_account_id", bankAccountID),
				slog.String("amount", amount.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal completed",
		slog.String("bank_account_id", bankAccountID),
		slog.String("amount", amount.String()))
	return account, nil
}

func validateWithdrawAmount(amount, balance decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: the amount to be withdrawn must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if amount.GreaterThan(balance) {
		return fmt.Errorf("%w: the amount to be withdrawn cannot be greater than the current balance", apperrors.ErrInsufficientFunds)
	}
	return nil
}
