package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize maps a raw row plus lookup tables into a canonical record. It is
// pure: a bad field degrades to its zero/null form but never invalidates the
// row, and an unresolvable foreign key resolves to nil.
func Normalize(row RawRow, lookups Lookups) TransactionRecord {
	rec := TransactionRecord{
		ID:           row.ID,
		Date:         parseDate(row.Date),
		Notes:        deref(row.Notes),
		Status:       deref(row.Status),
		DebtTag:      deref(row.DebtTag),
		DebtCycleTag: deref(row.DebtCycleTag),
	}

	if amount, ok := coerceInt64(row.Amount); ok && amount > 0 {
		rec.Amount = amount
	}

	rec.FinalPrice = rec.Amount
	if fp, ok := coerceInt64(row.FinalPrice); ok {
		rec.FinalPrice = fp
	}

	rec.CashbackPercent = coerceDecimal(row.CashbackPercent)
	rec.CashbackAmount = coerceDecimal(row.CashbackAmount)

	if row.FromAccountID != nil {
		if acc, ok := lookups.Accounts[*row.FromAccountID]; ok {
			rec.FromAccount = acc.Ref()
		}
	}
	if row.ToAccountID != nil {
		if acc, ok := lookups.Accounts[*row.ToAccountID]; ok {
			rec.ToAccount = acc.Ref()
		}
	}
	if row.CategoryID != nil {
		if cat, ok := lookups.Categories[*row.CategoryID]; ok {
			rec.Category = &cat
		}
	}
	if row.ShopID != nil {
		if shop, ok := lookups.Shops[*row.ShopID]; ok {
			rec.Shop = &shop
		}
	}
	if row.PersonID != nil {
		if person, ok := lookups.People[*row.PersonID]; ok {
			rec.Person = &person
		}
	}

	rec.Nature = resolveNature(row.Nature, rec.Category)

	return rec
}

// resolveNature prefers the explicit row code, falls back to the linked
// category's nature, and defaults to expense.
func resolveNature(code *string, category *Category) Nature {
	if code != nil {
		if nature, ok := ParseNature(*code); ok {
			return nature
		}
	}
	if category != nil && category.Nature != "" {
		return category.Nature
	}
	return NatureExpense
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// coerceInt64 interprets a numeric-like value as a whole number, truncating
// fractional parts toward zero. Unparsable or non-finite values fail.
func coerceInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case float32:
		return coerceInt64(float64(n))
	case json.Number:
		return coerceInt64(string(n))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// coerceDecimal interprets a numeric-like value as an exact decimal, or nil
// when it cannot be parsed as a finite number.
func coerceDecimal(v any) *decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		return &n
	case int64:
		d := decimal.NewFromInt(n)
		return &d
	case int:
		d := decimal.NewFromInt(int64(n))
		return &d
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		d := decimal.NewFromFloat(n)
		return &d
	case float32:
		return coerceDecimal(float64(n))
	case json.Number:
		return coerceDecimal(string(n))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
