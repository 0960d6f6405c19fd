package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/numerals"
	"github.com/iho/moneybook/internal/usecase"
)

// LedgerService defines the behavior needed by TransactionHandler.
type LedgerService interface {
	List(ctx context.Context, q domain.ListQuery) usecase.ListOutput
	Create(ctx context.Context, input usecase.CreateTransactionInput) (*domain.TransactionRecord, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	ledgerUC LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC}
}

// List returns one filtered, sorted page of the ledger. It answers 200 even
// when the service is degraded; the response carries a warning instead.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQueryFromRequest(r)

	out := h.ledgerUC.List(r.Context(), q)

	data := make([]*dto.TransactionResponse, len(out.Data))
	for i := range out.Data {
		rec := out.Data[i]
		data[i] = dto.TransactionFromDomain(&rec, numerals.Render(rec.Amount))
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Data:     data,
		Total:    out.Total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Warning:  out.Warning,
	})
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rec, err := h.ledgerUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(rec, numerals.Render(rec.Amount)))
}

func listQueryFromRequest(r *http.Request) domain.ListQuery {
	params := r.URL.Query()

	q := domain.ListQuery{
		Nature:     params.Get("nature"),
		AccountID:  params.Get("account_id"),
		CategoryID: params.Get("category_id"),
		Status:     params.Get("status"),
		Search:     params.Get("search"),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", domain.DefaultPageSize),
	}

	if from := parseDateQuery(params.Get("date_from")); from != nil {
		q.DateFrom = from
	}
	if to := parseDateQuery(params.Get("date_to")); to != nil {
		q.DateTo = to
	}

	// Clamp up front so the response echoes the pagination actually served.
	q.Page, q.PageSize = domain.NormalizePagination(q.Page, q.PageSize)

	return q
}

func parseDateQuery(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil
	}
	return &t
}
