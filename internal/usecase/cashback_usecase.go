package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/metrics"
	"github.com/iho/moneybook/internal/numerals"
)

// CashbackUseCase drives cashback reconciliation for one edit at a time.
type CashbackUseCase struct {
	accounts AccountResolver
	metrics  *metrics.Metrics // nil disables metric recording
	logger   zerolog.Logger
}

// NewCashbackUseCase creates a new CashbackUseCase.
func NewCashbackUseCase(accounts AccountResolver, m *metrics.Metrics, logger zerolog.Logger) *CashbackUseCase {
	return &CashbackUseCase{accounts: accounts, metrics: m, logger: logger}
}

// ReconcileCashbackInput mirrors the two linked UI fields: both raw inputs
// plus which of them the user touched last.
type ReconcileCashbackInput struct {
	TransactionAmount int64
	AccountID         string
	PercentInput      string
	AmountInput       string
	LastEdited        string // "percent", "amount" or empty
}

// ReconcileCashbackOutput is the reconciled pair plus a spelled-out hint of
// the final amount for display next to the field.
type ReconcileCashbackOutput struct {
	State   domain.CashbackState
	Hint    string
	Warning string
}

// Reconcile resolves the account, replays both fields into a session with the
// last-edited one applied last, and reports the reconciled state.
func (uc *CashbackUseCase) Reconcile(ctx context.Context, input ReconcileCashbackInput) (*ReconcileCashbackOutput, error) {
	account, warning, err := uc.accounts.ResolveAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	session := domain.NewCashbackSession(input.TransactionAmount, account)

	var state domain.CashbackState
	switch domain.CashbackField(input.LastEdited) {
	case domain.FieldPercent:
		if strings.TrimSpace(input.AmountInput) != "" {
			session.EditAmount(input.AmountInput)
		}
		state = session.EditPercent(input.PercentInput)
	case domain.FieldAmount:
		if strings.TrimSpace(input.PercentInput) != "" {
			session.EditPercent(input.PercentInput)
		}
		state = session.EditAmount(input.AmountInput)
	default:
		state = session.State()
	}

	if uc.metrics != nil {
		uc.metrics.CashbackReconciliations.Inc()
		if state.PercentExceeded {
			uc.metrics.CashbackClamps.WithLabelValues("percent").Inc()
		}
		if state.AmountExceeded {
			uc.metrics.CashbackClamps.WithLabelValues("amount").Inc()
		}
	}

	hint := ""
	if state.Enabled && state.Amount.IsPositive() {
		hint = numerals.Render(state.Amount.IntPart())
	}

	return &ReconcileCashbackOutput{State: state, Hint: hint, Warning: warning}, nil
}
