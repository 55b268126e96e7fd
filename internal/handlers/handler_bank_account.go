package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bcodes/bank_account_api/internal/apperrors"
	portssvc "github.com/bcodes/bank_account_api/internal/core/ports/services"
	"github.com/bcodes/bank_account_api/internal/dto"
	"github.com/bcodes/bank_account_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankAccountHandler handles HTTP requests related to bank accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(svc portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: svc}
}

// RegisterBankAccountRoutes registers routes related to bank accounts.
func RegisterBankAccountRoutes(rg *gin.RouterGroup, svc portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(svc)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:bankAccountID", h.getBankAccount)
		accounts.PUT("/:bankAccountID", h.updateBankAccount)
		accounts.DELETE("/:bankAccountID", h.deactivateBankAccount)
		accounts.PUT("/:bankAccountID/deposit", h.deposit)
		accounts.PUT("/:bankAccountID/withdraw", h.withdraw)
	}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description Opens a new bank account with a zero balance
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Bank account already exists"
// @Failure 500 {object} map[string]string "Failed to create bank account"
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newAccount, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
		}
		return
	}

	logger.Info("Bank account created successfully", slog.String("bank_account_id", newAccount.ID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(newAccount))
}

// getBankAccount godoc
// @Summary Get a bank account by ID
// @Description Retrieves one bank account with its ledger entries, oldest first
// @Tags bank-accounts
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve bank account"
// @Router /bank-accounts/{bankAccountID} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("bankAccountID")

	account, err := h.bankAccountService.FindBankAccount(c.Request.Context(), bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else {
			logger.Error("Failed to get bank account from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Description Lists bank accounts ordered by account number. Pagination metadata is present only when both page and pageSize are given.
// @Tags bank-accounts
// @Produce  json
// @Param   page query int false "1-indexed page number"
// @Param   pageSize query int false "Items per page"
// @Success 200 {object} dto.ListBankAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list bank accounts"
// @Router /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBankAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBankAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	list, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		logger.Error("Failed to list bank accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountsResponse(list))
}

// updateBankAccount godoc
// @Summary Update a bank account
// @Description Updates the agency and/or type of a bank account
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Param   bankAccount body dto.UpdateBankAccountRequest true "Fields to update"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to update bank account"
// @Router /bank-accounts/{bankAccountID} [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("bankAccountID")

	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), bankAccountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found for update", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else {
			logger.Error("Failed to update bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bank account"})
		}
		return
	}

	logger.Info("Bank account updated successfully", slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(updated))
}

// deactivateBankAccount godoc
// @Summary Deactivate a bank account
// @Description Marks a bank account as inactive (soft delete) and returns it
// @Tags bank-accounts
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate bank account"
// @Router /bank-accounts/{bankAccountID} [delete]
func (h *bankAccountHandler) deactivateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("bankAccountID")

	account, err := h.bankAccountService.DeactivateBankAccount(c.Request.Context(), bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found for deactivation", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else {
			logger.Error("Failed to deactivate bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate bank account"})
		}
		return
	}

	logger.Info("Bank account deactivated successfully", slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deposit godoc
// @Summary Deposit on a bank account
// @Description Adds a positive amount to the account balance and records a DEPOSIT ledger entry
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Param   amount body dto.BalanceOperationRequest true "Amount to deposit"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to deposit"
// @Router /bank-accounts/{bankAccountID}/deposit [put]
func (h *bankAccountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("bankAccountID")

	var req dto.BalanceOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.bankAccountService.DepositOnBankAccount(c.Request.Context(), bankAccountID, req.Value)
	if err != nil {
		h.renderBalanceError(c, err, "deposit")
		return
	}

	logger.Info("Deposit completed", slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// withdraw godoc
// @Summary Withdraw from a bank account
// @Description Subtracts a positive amount from the account balance and records a WITHDRAW ledger entry
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Param   amount body dto.BalanceOperationRequest true "Amount to withdraw"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid amount or insufficient funds"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to withdraw"
// @Router /bank-accounts/{bankAccountID}/withdraw [put]
func (h *bankAccountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("bankAccountID")

	var req dto.BalanceOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.bankAccountService.WithdrawFromBankAccount(c.Request.Context(), bankAccountID, req.Value)
	if err != nil {
		h.renderBalanceError(c, err, "withdraw")
		return
	}

	logger.Info("Withdrawal completed", slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// renderBalanceError maps balance-mutation failures to HTTP responses. The
// business-rule messages go back to the caller verbatim.
func (h *bankAccountHandler) renderBalanceError(c *gin.Context, err error, operation string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Rejected "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Bank account not found for " + operation)
		c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
	default:
		logger.Error("Failed to "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation})
	}
}
