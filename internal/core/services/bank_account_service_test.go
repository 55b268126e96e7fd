package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bcodes/bank_account_api/internal/apperrors"
	"github.com/bcodes/bank_account_api/internal/core/domain"
	portssvc "github.com/bcodes/bank_account_api/internal/core/ports/services"
	"github.com/bcodes/bank_account_api/internal/core/services"
	"github.com/bcodes/bank_account_api/internal/dto"
	"github.com/bcodes/bank_account_api/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockBankAccountRepository is a mock type for the BankAccountRepositoryFacade interface
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) (*domain.BankAccount, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) UpdateBankAccount(ctx context.Context, bankAccountID string, changes domain.BankAccountChanges, now time.Time) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, changes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) DeactivateBankAccount(ctx context.Context, bankAccountID string, now time.Time) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAllBankAccounts(ctx context.Context, page *pagination.Page) (*domain.BankAccountList, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccountList), args.Error(1)
}

func (m *MockBankAccountRepository) IncrementBalance(ctx context.Context, bankAccountID string, amount decimal.Decimal, now time.Time) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) DecrementBalance(ctx context.Context, bankAccountID string, amount decimal.Decimal, now time.Time) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BankAccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBankAccountRepository
	service  portssvc.BankAccountSvcFacade
	fixedID  string
	fixedNow time.Time
}

func (suite *BankAccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBankAccountRepository)
	suite.fixedID = uuid.NewString()
	suite.fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewBankAccountService(suite.mockRepo,
		services.WithIDGenerator(func() string { return suite.fixedID }),
		services.WithClock(func() time.Time { return suite.fixedNow }),
	)
}

func intPtr(i int) *int {
	return &i
}

// --- Create ---

func (suite *BankAccountServiceTestSuite) TestCreateBankAccount_Success() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{
		Agency: "0001",
		Type:   domain.Checking,
	}

	suite.mockRepo.On("SaveBankAccount", ctx, mock.MatchedBy(func(acc domain.BankAccount) bool {
		return acc.ID == suite.fixedID &&
			acc.Agency == "0001" &&
			acc.Type == domain.Checking &&
			acc.Balance.IsZero() &&
			acc.IsActive &&
			acc.CreatedAt.Equal(suite.fixedNow) &&
			acc.UpdatedAt.Equal(suite.fixedNow)
	})).Return(&domain.BankAccount{
		ID:            suite.fixedID,
		AccountNumber: 1,
		Agency:        "0001",
		Type:          domain.Checking,
		Balance:       decimal.Zero,
		IsActive:      true,
		CreatedAt:     suite.fixedNow,
		UpdatedAt:     suite.fixedNow,
	}, nil).Once()

	created, err := suite.service.CreateBankAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(suite.fixedID, created.ID)
	suite.Equal(int64(1), created.AccountNumber)
	suite.True(created.Balance.IsZero())
	suite.True(created.IsActive)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestCreateBankAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{
		Agency: "0001",
		Type:   domain.Savings,
	}

	expectedErr := assert.AnError
	suite.mockRepo.On("SaveBankAccount", ctx, mock.AnythingOfType("domain.BankAccount")).Return(nil, expectedErr).Once()

	created, err := suite.service.CreateBankAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Update ---

func (suite *BankAccountServiceTestSuite) TestUpdateBankAccount_Success() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	newAgency := "0002"
	newType := domain.Savings
	req := dto.UpdateBankAccountRequest{
		Agency: &newAgency,
		Type:   &newType,
	}

	expected := &domain.BankAccount{
		ID:        bankAccountID,
		Agency:    newAgency,
		Type:      newType,
		IsActive:  true,
		UpdatedAt: suite.fixedNow,
	}

	suite.mockRepo.On("UpdateBankAccount", ctx, bankAccountID, domain.BankAccountChanges{
		Agency: &newAgency,
		Type:   &newType,
	}, suite.fixedNow).Return(expected, nil).Once()

	updated, err := suite.service.UpdateBankAccount(ctx, bankAccountID, req)

	suite.Require().NoError(err)
	suite.Equal(expected, updated)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestUpdateBankAccount_NotFound() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("UpdateBankAccount", ctx, bankAccountID, domain.BankAccountChanges{}, suite.fixedNow).
		Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateBankAccount(ctx, bankAccountID, dto.UpdateBankAccountRequest{})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Deactivate ---

func (suite *BankAccountServiceTestSuite) TestDeactivateBankAccount_Success() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	expected := &domain.BankAccount{
		ID:        bankAccountID,
		IsActive:  false,
		UpdatedAt: suite.fixedNow,
	}

	suite.mockRepo.On("DeactivateBankAccount", ctx, bankAccountID, suite.fixedNow).Return(expected, nil).Once()

	account, err := suite.service.DeactivateBankAccount(ctx, bankAccountID)

	suite.Require().NoError(err)
	suite.False(account.IsActive)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestDeactivateBankAccount_Idempotent() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	deactivated := &domain.BankAccount{
		ID:        bankAccountID,
		IsActive:  false,
		UpdatedAt: suite.fixedNow,
	}

	// Deactivating an already-inactive account succeeds and leaves it inactive.
	suite.mockRepo.On("DeactivateBankAccount", ctx, bankAccountID, suite.fixedNow).
		Return(deactivated, nil).Twice()

	first, err := suite.service.DeactivateBankAccount(ctx, bankAccountID)
	suite.Require().NoError(err)
	suite.False(first.IsActive)

	second, err := suite.service.DeactivateBankAccount(ctx, bankAccountID)
	suite.Require().NoError(err)
	suite.False(second.IsActive)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestDeactivateBankAccount_NotFound() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("DeactivateBankAccount", ctx, bankAccountID, suite.fixedNow).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.DeactivateBankAccount(ctx, bankAccountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Find ---

func (suite *BankAccountServiceTestSuite) TestFindBankAccount_Success() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	expected := &domain.BankAccount{
		ID:      bankAccountID,
		Balance: decimal.NewFromInt(100),
		Transactions: []domain.Transaction{
			{ID: uuid.NewString(), BankAccountID: bankAccountID, Type: domain.Deposit, Value: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).Return(expected, nil).Once()

	account, err := suite.service.FindBankAccount(ctx, bankAccountID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.Len(account.Transactions, 1)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestFindBankAccount_NotFound() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.FindBankAccount(ctx, bankAccountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- List ---

func (suite *BankAccountServiceTestSuite) TestListBankAccounts_Unpaginated() {
	ctx := context.Background()

	suite.mockRepo.On("FindAllBankAccounts", ctx, (*pagination.Page)(nil)).
		Return(&domain.BankAccountList{BankAccounts: []domain.BankAccount{{ID: uuid.NewString()}}}, nil).Once()

	list, err := suite.service.ListBankAccounts(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Len(list.BankAccounts, 1)
	suite.Nil(list.Page)
	suite.Nil(list.PageSize)
	suite.Nil(list.Total)
	suite.Nil(list.PageCount)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestListBankAccounts_Paginated() {
	ctx := context.Background()
	total := 5
	pageCount := 3

	suite.mockRepo.On("FindAllBankAccounts", ctx, &pagination.Page{Number: 2, Size: 2}).
		Return(&domain.BankAccountList{
			BankAccounts: []domain.BankAccount{{ID: uuid.NewString()}, {ID: uuid.NewString()}},
			Page:         intPtr(2),
			PageSize:     intPtr(2),
			Total:        &total,
			PageCount:    &pageCount,
		}, nil).Once()

	list, err := suite.service.ListBankAccounts(ctx, intPtr(2), intPtr(2))

	suite.Require().NoError(err)
	suite.Len(list.BankAccounts, 2)
	suite.Equal(2, *list.Page)
	suite.Equal(2, *list.PageSize)
	suite.Equal(5, *list.Total)
	suite.Equal(3, *list.PageCount)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestListBankAccounts_PartialPaginationIgnored() {
	ctx := context.Background()

	// Only page given, no pageSize: treated as an unpaginated request.
	suite.mockRepo.On("FindAllBankAccounts", ctx, (*pagination.Page)(nil)).
		Return(&domain.BankAccountList{BankAccounts: []domain.BankAccount{}}, nil).Once()

	list, err := suite.service.ListBankAccounts(ctx, intPtr(1), nil)

	suite.Require().NoError(err)
	suite.Nil(list.Page)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestListBankAccounts_NilSliceNormalized() {
	ctx := context.Background()

	suite.mockRepo.On("FindAllBankAccounts", ctx, (*pagination.Page)(nil)).
		Return(&domain.BankAccountList{}, nil).Once()

	list, err := suite.service.ListBankAccounts(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.NotNil(list.BankAccounts)
	suite.Empty(list.BankAccounts)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Round trip ---

func (suite *BankAccountServiceTestSuite) TestCreateThenFindBankAccount_RoundTrip() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{
		Agency: "0001",
		Type:   domain.Savings,
	}

	// The mock acts as a tiny store: save captures the account, find returns a
	// fresh copy of it with an empty ledger. Run fires before the return values
	// are handed back, so the pointers are populated in time.
	stored := &domain.BankAccount{}
	foundCopy := &domain.BankAccount{}
	suite.mockRepo.On("SaveBankAccount", ctx, mock.AnythingOfType("domain.BankAccount")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(domain.BankAccount)
			acc.AccountNumber = 1
			*stored = acc
		}).
		Return(stored, nil).Once()
	suite.mockRepo.On("FindBankAccountByID", ctx, suite.fixedID).
		Run(func(args mock.Arguments) {
			*foundCopy = *stored
			foundCopy.Transactions = []domain.Transaction{}
		}).
		Return(foundCopy, nil).Once()

	created, err := suite.service.CreateBankAccount(ctx, req)
	suite.Require().NoError(err)

	found, err := suite.service.FindBankAccount(ctx, created.ID)
	suite.Require().NoError(err)

	suite.Equal(created.ID, found.ID)
	suite.Equal(created.AccountNumber, found.AccountNumber)
	suite.Equal(created.Agency, found.Agency)
	suite.Equal(created.Type, found.Type)
	suite.True(found.Balance.IsZero())
	suite.Equal(created.IsActive, found.IsActive)
	suite.True(created.CreatedAt.Equal(found.CreatedAt))
	suite.True(created.UpdatedAt.Equal(found.UpdatedAt))
	suite.Empty(found.Transactions)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Deposit ---

func (suite *BankAccountServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	amount := decimal.NewFromInt(2500)

	expected := &domain.BankAccount{
		ID:        bankAccountID,
		Balance:   decimal.NewFromInt(2500),
		IsActive:  true,
		UpdatedAt: suite.fixedNow,
	}

	suite.mockRepo.On("IncrementBalance", ctx, bankAccountID, amount, suite.fixedNow).Return(expected, nil).Once()

	account, err := suite.service.DepositOnBankAccount(ctx, bankAccountID, amount)

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromInt(2500)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestDeposit_ZeroAmount() {
	ctx := context.Background()

	account, err := suite.service.DepositOnBankAccount(ctx, uuid.NewString(), decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.ErrorContains(err, "the amount to be deposited must be greater than zero")

	// The repository must never see an invalid amount.
	suite.mockRepo.AssertNotCalled(suite.T(), "IncrementBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestDeposit_NegativeAmount() {
	ctx := context.Background()

	account, err := suite.service.DepositOnBankAccount(ctx, uuid.NewString(), decimal.NewFromInt(-10))

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	suite.mockRepo.AssertNotCalled(suite.T(), "IncrementBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestDeposit_NotFound() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	amount := decimal.NewFromInt(50)

	suite.mockRepo.On("IncrementBalance", ctx, bankAccountID, amount, suite.fixedNow).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.DepositOnBankAccount(ctx, bankAccountID, amount)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Withdraw ---

func (suite *BankAccountServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	amount := decimal.NewFromInt(500)

	current := &domain.BankAccount{
		ID:      bankAccountID,
		Balance: decimal.NewFromInt(2500),
	}
	expected := &domain.BankAccount{
		ID:        bankAccountID,
		Balance:   decimal.NewFromInt(2000),
		UpdatedAt: suite.fixedNow,
	}

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).Return(current, nil).Once()
	suite.mockRepo.On("DecrementBalance", ctx, bankAccountID, amount, suite.fixedNow).Return(expected, nil).Once()

	account, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, amount)

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromInt(2000)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_NotFoundBeforeAmountValidation() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).Return(nil, apperrors.ErrNotFound).Once()

	// Amount is invalid too, but a missing account wins.
	account, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, decimal.NewFromInt(-10))

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrInvalidAmount)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_ZeroAmount() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).
		Return(&domain.BankAccount{ID: bankAccountID, Balance: decimal.NewFromInt(100)}, nil).Once()

	account, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.ErrorContains(err, "the amount to be withdrawn must be greater than zero")

	suite.mockRepo.AssertNotCalled(suite.T(), "DecrementBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_AmountGreaterThanBalance() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).
		Return(&domain.BankAccount{ID: bankAccountID, Balance: decimal.NewFromInt(2000)}, nil).Once()

	account, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, decimal.NewFromInt(2001))

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.ErrorContains(err, "the amount to be withdrawn cannot be greater than the current balance")

	suite.mockRepo.AssertNotCalled(suite.T(), "DecrementBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_ExactBalance() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	amount := decimal.NewFromInt(2000)

	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).
		Return(&domain.BankAccount{ID: bankAccountID, Balance: decimal.NewFromInt(2000)}, nil).Once()
	suite.mockRepo.On("DecrementBalance", ctx, bankAccountID, amount, suite.fixedNow).
		Return(&domain.BankAccount{ID: bankAccountID, Balance: decimal.Zero}, nil).Once()

	account, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, amount)

	suite.Require().NoError(err)
	suite.True(account.Balance.IsZero())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestDepositThenWithdrawSequence() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	// The mock keeps one account's balance across calls so the whole sequence
	// runs against shared state: deposit 2500, withdraw 500, then a withdrawal
	// of 2001 is rejected and the balance stays at 2000.
	account := &domain.BankAccount{
		ID:      bankAccountID,
		Balance: decimal.Zero,
	}
	mutate := func(args mock.Arguments, sign int64) {
		amount := args.Get(2).(decimal.Decimal)
		account.Balance = account.Balance.Add(amount.Mul(decimal.NewFromInt(sign)))
	}

	suite.mockRepo.On("IncrementBalance", ctx, bankAccountID, mock.Anything, suite.fixedNow).
		Run(func(args mock.Arguments) { mutate(args, 1) }).
		Return(account, nil)
	suite.mockRepo.On("DecrementBalance", ctx, bankAccountID, mock.Anything, suite.fixedNow).
		Run(func(args mock.Arguments) { mutate(args, -1) }).
		Return(account, nil)
	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).
		Return(account, nil)

	deposited, err := suite.service.DepositOnBankAccount(ctx, bankAccountID, decimal.NewFromInt(2500))
	suite.Require().NoError(err)
	suite.True(deposited.Balance.Equal(decimal.NewFromInt(2500)))

	withdrawn, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, decimal.NewFromInt(500))
	suite.Require().NoError(err)
	suite.True(withdrawn.Balance.Equal(decimal.NewFromInt(2000)))

	rejected, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, decimal.NewFromInt(2001))
	suite.Require().Error(err)
	suite.Nil(rejected)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)

	current, err := suite.service.FindBankAccount(ctx, bankAccountID)
	suite.Require().NoError(err)
	suite.True(current.Balance.Equal(decimal.NewFromInt(2000)))

	suite.mockRepo.AssertNumberOfCalls(suite.T(), "IncrementBalance", 1)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "DecrementBalance", 1)
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_ConcurrentInsufficientFunds() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	amount := decimal.NewFromInt(100)

	// The snapshot says the funds are there, but the conditional decrement
	// loses the race and reports insufficient funds.
	suite.mockRepo.On("FindBankAccountByID", ctx, bankAccountID).
		Return(&domain.BankAccount{ID: bankAccountID, Balance: decimal.NewFromInt(150)}, nil).Once()
	suite.mockRepo.On("DecrementBalance", ctx, bankAccountID, amount, suite.fixedNow).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	account, err := suite.service.WithdrawFromBankAccount(ctx, bankAccountID, amount)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}
