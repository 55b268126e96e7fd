package dto

import (
	"github.com/bcodes/bank_account_api/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bankAccountTypeValidator accepts only the known account types.
func bankAccountTypeValidator(fl validator.FieldLevel) bool {
	switch domain.BankAccountType(fl.Field().String()) {
	case domain.Checking, domain.Savings:
		return true
	}
	return false
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation("bankaccounttype", bankAccountTypeValidator)
	}
}
