package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/usecase"
)

// CashbackService defines the behavior needed by CashbackHandler.
type CashbackService interface {
	Reconcile(ctx context.Context, input usecase.ReconcileCashbackInput) (*usecase.ReconcileCashbackOutput, error)
}

// CashbackHandler handles cashback reconciliation requests.
type CashbackHandler struct {
	cashbackUC CashbackService
}

// NewCashbackHandler creates a new CashbackHandler.
func NewCashbackHandler(cashbackUC CashbackService) *CashbackHandler {
	return &CashbackHandler{cashbackUC: cashbackUC}
}

// Reconcile reconciles the linked percent and amount fields for one edit.
func (h *CashbackHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileCashbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.cashbackUC.Reconcile(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile cashback", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconcileCashbackFromUseCase(out.State, out.Hint, out.Warning))
}
