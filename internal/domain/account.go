package domain

import "github.com/shopspring/decimal"

// Account represents a money account as far as the ledger cares about it:
// a name to resolve references against and the cashback terms attached to it.
type Account struct {
	ID                 string
	Name               string
	CashbackEligible   bool
	CashbackPercentage *decimal.Decimal // fractional, 0.05 means 5%
	MaxCashbackAmount  *decimal.Decimal
}

// Ref returns the account as a plain reference.
func (a *Account) Ref() *Ref {
	if a == nil {
		return nil
	}
	return &Ref{ID: a.ID, Name: a.Name}
}
