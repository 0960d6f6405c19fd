package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/usecase"
)

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Date            string           `json:"date"`
	Amount          int64            `json:"amount"`
	FinalPrice      *int64           `json:"final_price,omitempty"`
	Notes           string           `json:"notes"`
	Status          string           `json:"status"`
	Nature          string           `json:"nature"`
	FromAccountID   *string          `json:"from_account_id,omitempty"`
	ToAccountID     *string          `json:"to_account_id,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	ShopID          *string          `json:"shop_id,omitempty"`
	PersonID        *string          `json:"person_id,omitempty"`
	CashbackPercent *decimal.Decimal `json:"cashback_percent,omitempty"`
	CashbackAmount  *decimal.Decimal `json:"cashback_amount,omitempty"`
	DebtTag         string           `json:"debt_tag"`
	DebtCycleTag    string           `json:"debt_cycle_tag"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		Date:            r.Date,
		Amount:          r.Amount,
		FinalPrice:      r.FinalPrice,
		Notes:           r.Notes,
		Status:          r.Status,
		Nature:          r.Nature,
		FromAccountID:   r.FromAccountID,
		ToAccountID:     r.ToAccountID,
		CategoryID:      r.CategoryID,
		ShopID:          r.ShopID,
		PersonID:        r.PersonID,
		CashbackPercent: r.CashbackPercent,
		CashbackAmount:  r.CashbackAmount,
		DebtTag:         r.DebtTag,
		DebtCycleTag:    r.DebtCycleTag,
	}
}

// ReconcileCashbackRequest carries both cashback fields as the user typed
// them plus which one was touched last.
type ReconcileCashbackRequest struct {
	TransactionAmount int64  `json:"transaction_amount"`
	AccountID         string `json:"account_id"`
	PercentInput      string `json:"percent_input"`
	AmountInput       string `json:"amount_input"`
	LastEdited        string `json:"last_edited"`
}

// ToUseCaseInput converts to use case input.
func (r *ReconcileCashbackRequest) ToUseCaseInput() usecase.ReconcileCashbackInput {
	return usecase.ReconcileCashbackInput{
		TransactionAmount: r.TransactionAmount,
		AccountID:         r.AccountID,
		PercentInput:      r.PercentInput,
		AmountInput:       r.AmountInput,
		LastEdited:        r.LastEdited,
	}
}
