package services

import (
	portsrepo "github.com/bcodes/bank_account_api/internal/core/ports/repositories"
	portssvc "github.com/bcodes/bank_account_api/internal/core/ports/services"
)

// NewServiceContainer wires the repositories into the service container handed
// to the HTTP layer.
func NewServiceContainer(bankAccountRepo portsrepo.BankAccountRepositoryFacade) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		BankAccount: NewBankAccountService(bankAccountRepo),
	}
}
