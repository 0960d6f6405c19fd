package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CashbackField identifies which editable field currently drives the
// percent/amount relationship.
type CashbackField string

const (
	FieldPercent CashbackField = "percent"
	FieldAmount  CashbackField = "amount"
)

var oneHundred = decimal.NewFromInt(100)

// CashbackState is the observable outcome of a reconciliation step. Percent
// and Amount are always mutually consistent: percent is re-derived from the
// final floored amount after every edit. Source is nil when nothing drives
// the relationship ("no selection").
type CashbackState struct {
	Percent         decimal.Decimal
	Amount          decimal.Decimal
	Source          *CashbackField
	PercentExceeded bool
	AmountExceeded  bool
	Enabled         bool
	AmountLimit     decimal.Decimal
	PercentLimit    decimal.Decimal
}

// CashbackSession keeps a cashback percent and absolute amount in sync for
// one (transaction amount, account) pairing. It is a three-state machine:
// idle, driven by percent, driven by amount. The last edited field is the
// source of truth; the other is derived and clamped.
type CashbackSession struct {
	txAmount decimal.Decimal
	account  *Account

	enabled      bool
	amountLimit  decimal.Decimal
	percentLimit decimal.Decimal

	percent         decimal.Decimal
	amount          decimal.Decimal
	source          *CashbackField
	percentExceeded bool
	amountExceeded  bool
}

// NewCashbackSession builds a session for the given pairing.
func NewCashbackSession(txAmount int64, account *Account) *CashbackSession {
	s := &CashbackSession{}
	s.SetContext(txAmount, account)
	return s
}

// SetContext recomputes the derived caps for a new transaction amount or
// account, then re-derives both fields from whichever one was driving.
func (s *CashbackSession) SetContext(txAmount int64, account *Account) CashbackState {
	s.txAmount = decimal.NewFromInt(txAmount)
	s.account = account
	s.enabled = account != nil && account.CashbackEligible && txAmount > 0
	s.amountLimit, s.percentLimit = s.computeLimits()

	if !s.enabled {
		s.resetValues()
		return s.State()
	}

	switch {
	case s.source != nil && *s.source == FieldPercent:
		s.percentExceeded = s.percent.GreaterThan(s.percentLimit)
		s.amountExceeded = false
		s.applyPercent(s.percent)
	case s.source != nil && *s.source == FieldAmount:
		s.amountExceeded = s.amount.GreaterThan(s.amountLimit)
		s.percentExceeded = false
		s.applyAmount(s.amount)
	default:
		s.resetValues()
	}

	return s.State()
}

// EditPercent makes the percent field the source of truth. An empty input is
// a clear. Unparsable input coerces to zero rather than failing.
func (s *CashbackSession) EditPercent(raw string) CashbackState {
	if !s.enabled {
		s.resetValues()
		return s.State()
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.Clear(FieldPercent)
	}

	p, err := decimal.NewFromString(raw)
	if err != nil {
		p = decimal.Zero
	}

	s.percentExceeded = p.GreaterThan(s.percentLimit)
	s.amountExceeded = false
	s.applyPercent(p)

	return s.State()
}

// EditAmount makes the amount field the source of truth. An empty input is a
// clear. Unparsable input coerces to zero rather than failing.
func (s *CashbackSession) EditAmount(raw string) CashbackState {
	if !s.enabled {
		s.resetValues()
		return s.State()
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.Clear(FieldAmount)
	}

	a, err := decimal.NewFromString(raw)
	if err != nil {
		a = decimal.Zero
	}

	s.amountExceeded = a.GreaterThan(s.amountLimit)
	s.percentExceeded = false
	s.applyAmount(a)

	return s.State()
}

// Clear empties one field. Control falls back to the other field when it
// still holds a value, otherwise the session returns to idle.
func (s *CashbackSession) Clear(field CashbackField) CashbackState {
	if !s.enabled {
		s.resetValues()
		return s.State()
	}

	s.percentExceeded = false
	s.amountExceeded = false

	switch field {
	case FieldPercent:
		if s.amount.IsPositive() {
			s.applyAmount(s.amount)
		} else {
			s.resetValues()
		}
	case FieldAmount:
		if s.percent.IsPositive() {
			s.applyPercent(s.percent)
		} else {
			s.resetValues()
		}
	}

	return s.State()
}

// State snapshots the session without mutating it.
func (s *CashbackSession) State() CashbackState {
	state := CashbackState{
		Percent:         s.percent,
		Amount:          s.amount,
		PercentExceeded: s.percentExceeded,
		AmountExceeded:  s.amountExceeded,
		Enabled:         s.enabled,
		AmountLimit:     s.amountLimit,
		PercentLimit:    s.percentLimit,
	}
	if s.source != nil {
		src := *s.source
		state.Source = &src
	}
	return state
}

func (s *CashbackSession) applyPercent(p decimal.Decimal) {
	p = clampDecimal(p, decimal.Zero, s.percentLimit)

	amount := p.Mul(s.txAmount).Div(oneHundred).Floor()
	amount = clampDecimal(amount, decimal.Zero, s.amountLimit)

	s.amount = amount
	s.percent = s.derivePercent(amount)
	src := FieldPercent
	s.source = &src
}

// applyAmount runs the double-clamp pass: clamp the amount, derive and clamp
// the percent, re-derive a second amount candidate from that percent, and
// keep the smallest. Without the second pass the amount would drift upward
// whenever the percent clamp is the binding constraint.
func (s *CashbackSession) applyAmount(a decimal.Decimal) {
	first := clampDecimal(a.Floor(), decimal.Zero, s.amountLimit)

	percent := clampDecimal(s.derivePercent(first), decimal.Zero, s.percentLimit)
	second := percent.Mul(s.txAmount).Div(oneHundred).Floor()

	final := decimal.Min(first, second, s.amountLimit)
	if final.IsNegative() {
		final = decimal.Zero
	}

	s.amount = final
	s.percent = s.derivePercent(final)
	src := FieldAmount
	s.source = &src
}

func (s *CashbackSession) derivePercent(amount decimal.Decimal) decimal.Decimal {
	if !s.txAmount.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(oneHundred).Div(s.txAmount)
}

func (s *CashbackSession) computeLimits() (amountLimit, percentLimit decimal.Decimal) {
	if !s.enabled {
		return decimal.Zero, decimal.Zero
	}

	percentDerivedCap := s.txAmount
	if s.account.CashbackPercentage != nil {
		percentDerivedCap = s.account.CashbackPercentage.Mul(s.txAmount).Floor()
	}

	absoluteCap := s.txAmount
	if s.account.MaxCashbackAmount != nil {
		absoluteCap = s.account.MaxCashbackAmount.Floor()
	}

	amountLimit = decimal.Min(percentDerivedCap, absoluteCap, s.txAmount)
	if amountLimit.IsNegative() {
		amountLimit = decimal.Zero
	}

	if !amountLimit.IsPositive() {
		return amountLimit, decimal.Zero
	}

	percentCap := oneHundred
	if s.account.CashbackPercentage != nil {
		percentCap = decimal.Min(s.account.CashbackPercentage.Mul(oneHundred), oneHundred)
	}

	percentLimit = clampDecimal(amountLimit.Mul(oneHundred).Div(s.txAmount), decimal.Zero, percentCap)

	return amountLimit, percentLimit
}

func (s *CashbackSession) resetValues() {
	s.percent = decimal.Zero
	s.amount = decimal.Zero
	s.source = nil
	s.percentExceeded = false
	s.amountExceeded = false
}

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
