package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Nature is the four-way classification of a transaction.
type Nature string

const (
	NatureIncome   Nature = "IN"
	NatureExpense  Nature = "EX"
	NatureTransfer Nature = "TF"
	NatureDebt     Nature = "DEBT"
)

// legacy two-letter code still present in old rows
const legacyDebtCode = "DE"

// ParseNature resolves a nature code case-insensitively, accepting the legacy
// debt alias. The second return reports whether the code was recognized.
func ParseNature(code string) (Nature, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case string(NatureIncome):
		return NatureIncome, true
	case string(NatureExpense):
		return NatureExpense, true
	case string(NatureTransfer):
		return NatureTransfer, true
	case string(NatureDebt), legacyDebtCode:
		return NatureDebt, true
	default:
		return "", false
	}
}

// Ref is a resolved reference to a named entity.
type Ref struct {
	ID   string
	Name string
}

// Category is a resolved category reference. Its nature drives the fallback
// nature of transactions that carry no explicit code.
type Category struct {
	ID     string
	Name   string
	Nature Nature
}

// TransactionRecord is the canonical transaction shape, independent of
// whether the row came from the remote store or the in-memory fallback.
// Records are immutable once constructed.
type TransactionRecord struct {
	ID              string
	Date            time.Time
	Amount          int64
	FinalPrice      int64
	Notes           string
	Status          string
	Nature          Nature
	FromAccount     *Ref
	ToAccount       *Ref
	Category        *Category
	Shop            *Ref
	Person          *Ref
	CashbackPercent *decimal.Decimal
	CashbackAmount  *decimal.Decimal
	DebtTag         string
	DebtCycleTag    string
}

// Validate checks the structural invariants of a record before it is written.
func (r *TransactionRecord) Validate() error {
	if r.Amount < 0 {
		return ErrNegativeAmount
	}

	if r.Nature == NatureTransfer {
		if r.FromAccount == nil || r.ToAccount == nil {
			return ErrMissingAccount
		}
		if r.FromAccount.ID == r.ToAccount.ID {
			return ErrSameAccount
		}
	}

	return nil
}
