package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RefResponse is a resolved reference in API responses.
type RefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse is a resolved category in API responses.
type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Nature string `json:"nature"`
}

// TransactionResponse represents a canonical transaction in API responses.
type TransactionResponse struct {
	ID              string            `json:"id"`
	Date            time.Time         `json:"date"`
	Amount          int64             `json:"amount"`
	FinalPrice      int64             `json:"final_price"`
	Notes           string            `json:"notes"`
	Status          string            `json:"status"`
	Nature          string            `json:"nature"`
	FromAccount     *RefResponse      `json:"from_account,omitempty"`
	ToAccount       *RefResponse      `json:"to_account,omitempty"`
	Category        *CategoryResponse `json:"category,omitempty"`
	Shop            *RefResponse      `json:"shop,omitempty"`
	Person          *RefResponse      `json:"person,omitempty"`
	CashbackPercent *decimal.Decimal  `json:"cashback_percent,omitempty"`
	CashbackAmount  *decimal.Decimal  `json:"cashback_amount,omitempty"`
	DebtTag         string            `json:"debt_tag,omitempty"`
	DebtCycleTag    string            `json:"debt_cycle_tag,omitempty"`
	AmountInWords   string            `json:"amount_in_words"`
}

// TransactionFromDomain converts a domain record to a response. The spelled
// amount comes from the caller so the handler decides the rendering source.
func TransactionFromDomain(rec *domain.TransactionRecord, amountInWords string) *TransactionResponse {
	resp := &TransactionResponse{
		ID:              rec.ID,
		Date:            rec.Date,
		Amount:          rec.Amount,
		FinalPrice:      rec.FinalPrice,
		Notes:           rec.Notes,
		Status:          rec.Status,
		Nature:          string(rec.Nature),
		FromAccount:     refFromDomain(rec.FromAccount),
		ToAccount:       refFromDomain(rec.ToAccount),
		Shop:            refFromDomain(rec.Shop),
		Person:          refFromDomain(rec.Person),
		CashbackPercent: rec.CashbackPercent,
		CashbackAmount:  rec.CashbackAmount,
		DebtTag:         rec.DebtTag,
		DebtCycleTag:    rec.DebtCycleTag,
		AmountInWords:   amountInWords,
	}

	if rec.Category != nil {
		resp.Category = &CategoryResponse{
			ID:     rec.Category.ID,
			Name:   rec.Category.Name,
			Nature: string(rec.Category.Nature),
		}
	}

	return resp
}

func refFromDomain(ref *domain.Ref) *RefResponse {
	if ref == nil {
		return nil
	}
	return &RefResponse{ID: ref.ID, Name: ref.Name}
}

// ListTransactionsResponse is one page of transactions. Warning is set when
// the service degraded to its in-memory fallback.
type ListTransactionsResponse struct {
	Data     []*TransactionResponse `json:"data"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
	Warning  string                 `json:"warning,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	CashbackEligible   bool             `json:"cashback_eligible"`
	CashbackPercentage *decimal.Decimal `json:"cashback_percentage,omitempty"`
	MaxCashbackAmount  *decimal.Decimal `json:"max_cashback_amount,omitempty"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:                 a.ID,
		Name:               a.Name,
		CashbackEligible:   a.CashbackEligible,
		CashbackPercentage: a.CashbackPercentage,
		MaxCashbackAmount:  a.MaxCashbackAmount,
	}
}

// ListAccountsResponse lists the known accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Warning  string             `json:"warning,omitempty"`
}

// ReconcileCashbackResponse is the reconciled cashback pair.
type ReconcileCashbackResponse struct {
	Percent         decimal.Decimal `json:"percent"`
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source,omitempty"`
	PercentExceeded bool            `json:"percent_exceeded"`
	AmountExceeded  bool            `json:"amount_exceeded"`
	Enabled         bool            `json:"enabled"`
	AmountLimit     decimal.Decimal `json:"amount_limit"`
	PercentLimit    decimal.Decimal `json:"percent_limit"`
	Hint            string          `json:"hint,omitempty"`
	Warning         string          `json:"warning,omitempty"`
}

// ReconcileCashbackFromUseCase converts use case output to a response.
func ReconcileCashbackFromUseCase(state domain.CashbackState, hint, warning string) *ReconcileCashbackResponse {
	resp := &ReconcileCashbackResponse{
		Percent:         state.Percent,
		Amount:          state.Amount,
		PercentExceeded: state.PercentExceeded,
		AmountExceeded:  state.AmountExceeded,
		Enabled:         state.Enabled,
		AmountLimit:     state.AmountLimit,
		PercentLimit:    state.PercentLimit,
		Hint:            hint,
		Warning:         warning,
	}
	if state.Source != nil {
		resp.Source = string(*state.Source)
	}

	return resp
}

// NumeralResponse is a spelled-out number.
type NumeralResponse struct {
	Value int64  `json:"value"`
	Text  string `json:"text"`
}
