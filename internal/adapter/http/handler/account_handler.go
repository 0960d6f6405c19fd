package handler

import (
	"context"
	"net/http"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Accounts(ctx context.Context) ([]domain.Account, string)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	ledgerUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerUC AccountService) *AccountHandler {
	return &AccountHandler{ledgerUC: ledgerUC}
}

// List lists the known accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, warning := h.ledgerUC.Accounts(r.Context())

	result := make([]*dto.AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = dto.AccountFromDomain(&accounts[i])
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: result,
		Warning:  warning,
	})
}
