package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bcodes/bank_account_api/internal/apperrors"
	"github.com/bcodes/bank_account_api/internal/core/domain"
	portsrepo "github.com/bcodes/bank_account_api/internal/core/ports/repositories"
	"github.com/bcodes/bank_account_api/internal/models"
	"github.com/bcodes/bank_account_api/internal/utils/mapping"
	"github.com/bcodes/bank_account_api/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const bankAccountColumns = `bank_account_id, account_number, agency, type, balance, is_active, created_at, updated_at`

// PgxBankAccountRepository persists bank accounts and their ledger entries.
type PgxBankAccountRepository struct {
	BaseRepository
}

// NewBankAccountRepository creates a new repository for bank account data.
func NewBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankAccountRepository implements the facade
var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

// scanBankAccount reads one account row in bankAccountColumns order.
func scanBankAccount(row pgx.Row) (*models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.AccountNumber,
		&m.Agency,
		&m.Type,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBankAccount inserts a new account. The account number comes back from
// the database sequence; the core never assigns it.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) (*domain.BankAccount, error) {
	modelAcc := mapping.ToModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (bank_account_id, agency, type, balance, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_number;
	`

	err := r.Pool.QueryRow(ctx, query,
		modelAcc.BankAccountID,
		modelAcc.Agency,
		modelAcc.Type,
		modelAcc.Balance,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.UpdatedAt,
	).Scan(&modelAcc.AccountNumber)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: bank account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.BankAccountID)
		}
		return nil, apperrors.NewAppError(500, "failed to save bank account "+modelAcc.BankAccountID, err)
	}

	domainAcc := mapping.ToDomainBankAccount(modelAcc)
	return &domainAcc, nil
}

// UpdateBankAccount applies a partial update to agency and/or type.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, bankAccountID string, changes domain.BankAccountChanges, now time.Time) (*domain.BankAccount, error) {
	query := `
		UPDATE bank_accounts
		SET agency = COALESCE($2, agency), type = COALESCE($3, type), updated_at = $4
		WHERE bank_account_id = $1
		RETURNING ` + bankAccountColumns + `;
	`

	// pgx maps nil pointers to SQL NULL, which COALESCE turns into "keep".
	var accountType *string
	if changes.Type != nil {
		t := string(*changes.Type)
		accountType = &t
	}

	modelAcc, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID, changes.Agency, accountType, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to update bank account "+bankAccountID, err)
	}

	domainAcc := mapping.ToDomainBankAccount(*modelAcc)
	return &domainAcc, nil
}

// DeactivateBankAccount marks an account as inactive. Re-deactivating an
// already-inactive account leaves it inactive without error.
func (r *PgxBankAccountRepository) DeactivateBankAccount(ctx context.Context, bankAccountID string, now time.Time) (*domain.BankAccount, error) {
	query := `
		UPDATE bank_accounts
		SET is_active = FALSE, updated_at = $2
		WHERE bank_account_id = $1
		RETURNING ` + bankAccountColumns + `;
	`

	modelAcc, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to deactivate bank account "+bankAccountID, err)
	}

	domainAcc := mapping.ToDomainBankAccount(*modelAcc)
	return &domainAcc, nil
}

// FindBankAccountByID retrieves an account with its ledger entries ordered by
// creation time ascending.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE bank_account_id = $1;
	`

	modelAcc, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account by ID "+bankAccountID, err)
	}

	transactions, err := r.findTransactions(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	domainAcc := mapping.ToDomainBankAccount(*modelAcc)
	domainAcc.Transactions = mapping.ToDomainTransactionSlice(transactions)
	return &domainAcc, nil
}

func (r *PgxBankAccountRepository) findTransactions(ctx context.Context, bankAccountID string) ([]models.Transaction, error) {
	query := `
		SELECT transaction_id, bank_account_id, type, value, created_at
		FROM transactions
		WHERE bank_account_id = $1
		ORDER BY created_at;
	`

	rows, err := r.Pool.Query(ctx, query, bankAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for bank account "+bankAccountID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.TransactionID, &t.BankAccountID, &t.Type, &t.Value, &t.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for bank account "+bankAccountID, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for bank account "+bankAccountID, err)
	}

	return transactions, nil
}

// FindAllBankAccounts retrieves accounts ordered by account number. With a nil
// page it returns every account and no pagination metadata; otherwise the
// requested page plus total and page count.
func (r *PgxBankAccountRepository) FindAllBankAccounts(ctx context.Context, page *pagination.Page) (*domain.BankAccountList, error) {
	if page == nil {
		accounts, err := r.queryBankAccounts(ctx, `
			SELECT `+bankAccountColumns+`
			FROM bank_accounts
			ORDER BY account_number;
		`)
		if err != nil {
			return nil, err
		}
		return &domain.BankAccountList{BankAccounts: accounts}, nil
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM bank_accounts;`).Scan(&total); err != nil {
		return nil, apperrors.NewAppError(500, "failed to count bank accounts", err)
	}

	accounts, err := r.queryBankAccounts(ctx, `
		SELECT `+bankAccountColumns+`
		FROM bank_accounts
		ORDER BY account_number
		LIMIT $1 OFFSET $2;
	`, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	pageCount := pagination.PageCount(total, page.Size)
	return &domain.BankAccountList{
		BankAccounts: accounts,
		Page:         &page.Number,
		PageSize:     &page.Size,
		Total:        &total,
		PageCount:    &pageCount,
	}, nil
}

func (r *PgxBankAccountRepository) queryBankAccounts(ctx context.Context, query string, args ...any) ([]domain.BankAccount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.BankAccountID,
			&m.AccountNumber,
			&m.Agency,
			&m.Type,
			&m.Balance,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}

	return accounts, nil
}

// IncrementBalance atomically adds amount to the balance and appends a DEPOSIT
// ledger entry. Both run in one transaction: they commit or roll back together.
func (r *PgxBankAccountRepository) IncrementBalance(ctx context.Context, bankAccountID string, amount decimal.Decimal, now time.Time) (*domain.BankAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	query := `
		UPDATE bank_accounts
		SET balance = balance + $2, updated_at = $3
		WHERE bank_account_id = $1
		RETURNING ` + bankAccountColumns + `;
	`

	modelAcc, err := scanBankAccount(tx.QueryRow(ctx, query, bankAccountID, amount, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to increment balance for bank account "+bankAccountID, err)
	}

	if err := r.insertTransaction(ctx, tx, bankAccountID, models.Deposit, amount, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainAcc := mapping.ToDomainBankAccount(*modelAcc)
	return &domainAcc, nil
}

// DecrementBalance atomically subtracts amount from the balance and appends a
// WITHDRAW ledger entry. The balance guard lives in the UPDATE itself, so two
// concurrent withdrawals can never drive the balance negative.
func (r *PgxBankAccountRepository) DecrementBalance(ctx context.Context, bankAccountID string, amount decimal.Decimal, now time.Time) (*domain.BankAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE bank_accounts
		SET balance = balance - $2, updated_at = $3
		WHERE bank_account_id = $1 AND balance >= $2
		RETURNING ` + bankAccountColumns + `;
	`

	modelAcc, err := scanBankAccount(tx.QueryRow(ctx, query, bankAccountID, amount, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row updated: either the account is missing or the balance
			// guard rejected the withdrawal. Probe to tell them apart.
			var exists bool
			probeErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bank_accounts WHERE bank_account_id = $1);`, bankAccountID).Scan(&exists)
			if probeErr != nil {
				return nil, apperrors.NewAppError(500, "failed to check bank account after rejected withdrawal "+bankAccountID, probeErr)
			}
			if !exists {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("%w: the amount to be withdrawn cannot be greater than the current balance", apperrors.ErrInsufficientFunds)
		}
		return nil, apperrors.NewAppError(500, "failed to decrement balance for bank account "+bankAccountID, err)
	}

	if err := r.insertTransaction(ctx, tx, bankAccountID, models.Withdraw, amount, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainAcc := mapping.ToDomainBankAccount(*modelAcc)
	return &domainAcc, nil
}

func (r *PgxBankAccountRepository) insertTransaction(ctx context.Context, tx pgx.Tx, bankAccountID string, txnType models.TransactionType, value decimal.Decimal, now time.Time) error {
	query := `
		INSERT INTO transactions (transaction_id, bank_account_id, type, value, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := tx.Exec(ctx, query, uuid.NewString(), bankAccountID, txnType, value, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry for bank account "+bankAccountID, err)
	}
	return nil
}

// Clear wipes all account and ledger rows. Test-environment reset only.
func (r *PgxBankAccountRepository) Clear(ctx context.Context) error {
	_, err := r.Pool.Exec(ctx, `TRUNCATE bank_accounts, transactions RESTART IDENTITY;`)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear bank account tables", err)
	}
	return nil
}
