package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func decimalPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := decimalFromString(t, s)
	return &d
}

func cashbackAccount(t *testing.T, percentage, max string) *Account {
	t.Helper()
	acc := &Account{ID: "acc-1", Name: "Techcombank", CashbackEligible: true}
	if percentage != "" {
		acc.CashbackPercentage = decimalPtr(t, percentage)
	}
	if max != "" {
		acc.MaxCashbackAmount = decimalPtr(t, max)
	}
	return acc
}

// The absolute cap binds: 5% of a million is 50 000, but the account caps
// cashback at 30 000, so the percent ceiling works out to 3%.
func TestCashbackSession_DerivedCaps(t *testing.T) {
	s := NewCashbackSession(1_000_000, cashbackAccount(t, "0.05", "30000"))
	state := s.State()

	if !state.AmountLimit.Equal(decimal.NewFromInt(30_000)) {
		t.Errorf("AmountLimit = %s, want 30000", state.AmountLimit)
	}
	if !state.PercentLimit.Equal(decimal.NewFromInt(3)) {
		t.Errorf("PercentLimit = %s, want 3", state.PercentLimit)
	}
}

func TestCashbackSession_AmountNeverExceedsCaps(t *testing.T) {
	tests := []struct {
		name       string
		txAmount   int64
		percentage string
		max        string
		edits      []func(*CashbackSession) CashbackState
		wantMax    int64
	}{
		{
			name: "huge percent entry", txAmount: 1_000_000, percentage: "0.05", max: "30000",
			edits:   []func(*CashbackSession) CashbackState{func(s *CashbackSession) CashbackState { return s.EditPercent("99") }},
			wantMax: 30_000,
		},
		{
			name: "huge amount entry", txAmount: 1_000_000, percentage: "0.05", max: "30000",
			edits:   []func(*CashbackSession) CashbackState{func(s *CashbackSession) CashbackState { return s.EditAmount("500000") }},
			wantMax: 30_000,
		},
		{
			name: "no percent cap gates on absolute cap", txAmount: 200_000, percentage: "", max: "50000",
			edits:   []func(*CashbackSession) CashbackState{func(s *CashbackSession) CashbackState { return s.EditAmount("120000") }},
			wantMax: 50_000,
		},
		{
			name: "no caps at all gates on transaction amount", txAmount: 4_000, percentage: "", max: "",
			edits:   []func(*CashbackSession) CashbackState{func(s *CashbackSession) CashbackState { return s.EditAmount("9000") }},
			wantMax: 4_000,
		},
		{
			name: "percent cap binds when smaller", txAmount: 100_000, percentage: "0.02", max: "90000",
			edits:   []func(*CashbackSession) CashbackState{func(s *CashbackSession) CashbackState { return s.EditPercent("100") }},
			wantMax: 2_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCashbackSession(tt.txAmount, cashbackAccount(t, tt.percentage, tt.max))

			var state CashbackState
			for _, edit := range tt.edits {
				state = edit(s)
			}

			if state.Amount.GreaterThan(decimal.NewFromInt(tt.wantMax)) {
				t.Errorf("Amount = %s, exceeds cap %d", state.Amount, tt.wantMax)
			}
		})
	}
}

func TestCashbackSession_EditPercentDerivesAmount(t *testing.T) {
	s := NewCashbackSession(1_000_000, cashbackAccount(t, "0.05", "30000"))
	state := s.EditPercent("2")

	if !state.Amount.Equal(decimal.NewFromInt(20_000)) {
		t.Errorf("Amount = %s, want 20000", state.Amount)
	}
	if !state.Percent.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Percent = %s, want 2", state.Percent)
	}
	if state.Source == nil || *state.Source != FieldPercent {
		t.Errorf("Source = %v, want percent", state.Source)
	}
	if state.PercentExceeded || state.AmountExceeded {
		t.Error("no limit was crossed, exceeded flags must be clear")
	}
}

// Editing percent, then feeding the derived amount back in as an amount edit,
// must land on exactly the same pair. No oscillation.
func TestCashbackSession_EditConvergence(t *testing.T) {
	s := NewCashbackSession(1_000_000, cashbackAccount(t, "0.05", "30000"))

	first := s.EditPercent("2.7")
	second := s.EditAmount(first.Amount.String())
	third := s.EditPercent(second.Percent.String())

	if !second.Amount.Equal(first.Amount) {
		t.Errorf("amount drifted: %s then %s", first.Amount, second.Amount)
	}
	if !third.Amount.Equal(second.Amount) || !third.Percent.Equal(second.Percent) {
		t.Errorf("no fixed point: (%s, %s) then (%s, %s)",
			second.Percent, second.Amount, third.Percent, third.Amount)
	}
}

func TestCashbackSession_ExceededFlagsAreAdvisory(t *testing.T) {
	s := NewCashbackSession(1_000_000, cashbackAccount(t, "0.05", "30000"))

	state := s.EditPercent("50")
	if !state.PercentExceeded {
		t.Error("PercentExceeded must be set for raw input over the limit")
	}
	if !state.Percent.Equal(decimal.NewFromInt(3)) {
		t.Errorf("stored Percent = %s, want clamped 3", state.Percent)
	}
	if !state.Amount.Equal(decimal.NewFromInt(30_000)) {
		t.Errorf("stored Amount = %s, want clamped 30000", state.Amount)
	}

	state = s.EditAmount("45000")
	if !state.AmountExceeded {
		t.Error("AmountExceeded must be set for raw input over the limit")
	}
	if state.PercentExceeded {
		t.Error("PercentExceeded must reset on an amount edit")
	}
	if !state.Amount.Equal(decimal.NewFromInt(30_000)) {
		t.Errorf("stored Amount = %s, want clamped 30000", state.Amount)
	}
}

func TestCashbackSession_ClearFallsBackToOtherField(t *testing.T) {
	s := NewCashbackSession(1_000_000, cashbackAccount(t, "0.05", "30000"))

	s.EditAmount("20000")
	state := s.Clear(FieldAmount)

	if state.Source == nil || *state.Source != FieldPercent {
		t.Errorf("Source = %v, want percent after amount clear", state.Source)
	}
	if !state.Amount.Equal(decimal.NewFromInt(20_000)) {
		t.Errorf("Amount = %s, want re-derived 20000", state.Amount)
	}

	s.EditAmount("0")
	state = s.Clear(FieldAmount)
	// nothing left to fall back on: no selection
	if state.Source != nil {
		t.Errorf("Source = %v, want nil", state.Source)
	}
	if !state.Amount.IsZero() || !state.Percent.IsZero() {
		t.Errorf("cleared session holds (%s, %s), want zeros", state.Percent, state.Amount)
	}
}

func TestCashbackSession_Disabled(t *testing.T) {
	ineligible := &Account{ID: "acc-1", Name: "Ví tiền mặt", CashbackEligible: false}

	tests := []struct {
		name     string
		txAmount int64
		account  *Account
	}{
		{"ineligible account", 1_000_000, ineligible},
		{"zero transaction amount", 0, cashbackAccount(t, "0.05", "30000")},
		{"nil account", 1_000_000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCashbackSession(tt.txAmount, tt.account)

			for _, state := range []CashbackState{s.EditPercent("5"), s.EditAmount("1000"), s.State()} {
				if state.Enabled {
					t.Error("session must report disabled")
				}
				if !state.Amount.IsZero() || !state.Percent.IsZero() {
					t.Errorf("disabled session holds (%s, %s), want zeros", state.Percent, state.Amount)
				}
				if state.Source != nil {
					t.Errorf("Source = %v, want nil", state.Source)
				}
			}
		})
	}
}

func TestCashbackSession_ContextChangeReclamps(t *testing.T) {
	s := NewCashbackSession(1_000_000, cashbackAccount(t, "0.05", "30000"))
	s.EditAmount("30000")

	// shrink the transaction: old amount no longer fits under 5% of 100 000
	state := s.SetContext(100_000, cashbackAccount(t, "0.05", "30000"))

	if !state.Amount.Equal(decimal.NewFromInt(5_000)) {
		t.Errorf("Amount = %s, want reclamped 5000", state.Amount)
	}
	if state.Source == nil || *state.Source != FieldAmount {
		t.Errorf("Source = %v, want amount preserved across context change", state.Source)
	}
}
