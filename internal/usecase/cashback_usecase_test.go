package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
	usecasemocks "github.com/iho/moneybook/internal/usecase/mocks"
)

func eligibleAccount(t *testing.T) *domain.Account {
	t.Helper()
	pct := decimal.RequireFromString("0.05")
	max := decimal.NewFromInt(30000)
	return &domain.Account{
		ID:                 "acc-tcb",
		Name:               "Thẻ tín dụng Techcombank",
		CashbackEligible:   true,
		CashbackPercentage: &pct,
		MaxCashbackAmount:  &max,
	}
}

func TestCashbackUseCase_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := usecasemocks.NewMockAccountResolver(ctrl)
	resolver.EXPECT().
		ResolveAccount(gomock.Any(), "acc-tcb").
		Return(eligibleAccount(t), "", nil).
		AnyTimes()

	uc := usecase.NewCashbackUseCase(resolver, nil, zerolog.Nop())

	t.Run("percent edit derives amount", func(t *testing.T) {
		out, err := uc.Reconcile(context.Background(), usecase.ReconcileCashbackInput{
			TransactionAmount: 1_000_000,
			AccountID:         "acc-tcb",
			PercentInput:      "2",
			LastEdited:        "percent",
		})
		require.NoError(t, err)
		require.True(t, out.State.Enabled)
		require.Equal(t, "20000", out.State.Amount.String())
		require.Equal(t, "2", out.State.Percent.String())
		require.NotNil(t, out.State.Source)
		require.Equal(t, domain.FieldPercent, *out.State.Source)
		require.Equal(t, "Hai mươi nghìn", out.Hint)
	})

	t.Run("amount edit rederives percent and discards stale percent input", func(t *testing.T) {
		out, err := uc.Reconcile(context.Background(), usecase.ReconcileCashbackInput{
			TransactionAmount: 1_000_000,
			AccountID:         "acc-tcb",
			PercentInput:      "2",
			AmountInput:       "10000",
			LastEdited:        "amount",
		})
		require.NoError(t, err)
		require.Equal(t, "10000", out.State.Amount.String())
		require.Equal(t, "1", out.State.Percent.String())
		require.Equal(t, domain.FieldAmount, *out.State.Source)
	})

	t.Run("excessive percent clamps and flags", func(t *testing.T) {
		out, err := uc.Reconcile(context.Background(), usecase.ReconcileCashbackInput{
			TransactionAmount: 1_000_000,
			AccountID:         "acc-tcb",
			PercentInput:      "50",
			LastEdited:        "percent",
		})
		require.NoError(t, err)
		require.True(t, out.State.PercentExceeded)
		require.Equal(t, "3", out.State.Percent.String())
		require.Equal(t, "30000", out.State.Amount.String())
	})

	t.Run("no edit yields idle state without hint", func(t *testing.T) {
		out, err := uc.Reconcile(context.Background(), usecase.ReconcileCashbackInput{
			TransactionAmount: 1_000_000,
			AccountID:         "acc-tcb",
		})
		require.NoError(t, err)
		require.Nil(t, out.State.Source)
		require.True(t, out.State.Amount.IsZero())
		require.Empty(t, out.Hint)
	})
}

func TestCashbackUseCase_ReconcilePropagatesWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := usecasemocks.NewMockAccountResolver(ctrl)
	resolver.EXPECT().
		ResolveAccount(gomock.Any(), "acc-tcb").
		Return(eligibleAccount(t), "remote store is not configured; serving in-memory data", nil)

	uc := usecase.NewCashbackUseCase(resolver, nil, zerolog.Nop())

	out, err := uc.Reconcile(context.Background(), usecase.ReconcileCashbackInput{
		TransactionAmount: 1_000_000,
		AccountID:         "acc-tcb",
		PercentInput:      "1",
		LastEdited:        "percent",
	})
	require.NoError(t, err)
	require.Contains(t, out.Warning, "not configured")
	require.Equal(t, "10000", out.State.Amount.String())
}

func TestCashbackUseCase_ReconcileUnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := usecasemocks.NewMockAccountResolver(ctrl)
	resolver.EXPECT().
		ResolveAccount(gomock.Any(), "acc-missing").
		Return(nil, "", domain.ErrAccountNotFound)

	uc := usecase.NewCashbackUseCase(resolver, nil, zerolog.Nop())

	out, err := uc.Reconcile(context.Background(), usecase.ReconcileCashbackInput{
		TransactionAmount: 1_000_000,
		AccountID:         "acc-missing",
		PercentInput:      "1",
		LastEdited:        "percent",
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Nil(t, out)
}
