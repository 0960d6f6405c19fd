package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/metrics"
)

const (
	defaultStatus   = "Active"
	lookupsCacheKey = "lookups"

	warnNotConfigured = "remote store is not configured; serving in-memory data"
)

// LedgerUseCase serves transaction listings and creations. Reads prefer the
// remote source and degrade to the fallback snapshot with an advisory warning
// instead of failing; writes go to the remote first and only reach the
// fallback once the remote accepted them (or when no remote is configured).
type LedgerUseCase struct {
	remote    TransactionSource // nil when the remote store is not configured
	fallback  FallbackStore
	cache     Cache // nil disables lookup caching
	retrier   Retrier
	idGen     IDGenerator
	metrics   *metrics.Metrics // nil disables metric recording
	logger    zerolog.Logger
	lookupTTL time.Duration
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	remote TransactionSource,
	fallback FallbackStore,
	cache Cache,
	retrier Retrier,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
	lookupTTL time.Duration,
) *LedgerUseCase {
	return &LedgerUseCase{
		remote:    remote,
		fallback:  fallback,
		cache:     cache,
		retrier:   retrier,
		idGen:     idGen,
		metrics:   m,
		logger:    logger,
		lookupTTL: lookupTTL,
	}
}

// ListOutput is one page of canonical records. Warning is advisory and never
// blocks Data or Total from being populated.
type ListOutput struct {
	Data    []domain.TransactionRecord
	Total   int
	Warning string
}

// List normalizes the current collection and runs the query over it. It never
// fails on transport errors, it degrades.
func (uc *LedgerUseCase) List(ctx context.Context, q domain.ListQuery) ListOutput {
	rows, lookups, warning := uc.snapshot(ctx)

	records := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.Normalize(row, lookups))
	}

	res := domain.RunQuery(records, q)

	if uc.metrics != nil {
		uc.metrics.TransactionsListed.Inc()
		if warning != "" {
			uc.metrics.FallbackServes.Inc()
		}
	}

	return ListOutput{Data: res.Data, Total: res.Total, Warning: warning}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	Date            string
	Amount          int64
	FinalPrice      *int64
	Notes           string
	Status          string
	Nature          string
	FromAccountID   *string
	ToAccountID     *string
	CategoryID      *string
	ShopID          *string
	PersonID        *string
	CashbackPercent *decimal.Decimal
	CashbackAmount  *decimal.Decimal
	DebtTag         string
	DebtCycleTag    string
}

// Create inserts a transaction. Remote errors are returned verbatim and leave
// the fallback untouched; exactly one of record and error is populated.
func (uc *LedgerUseCase) Create(ctx context.Context, input CreateTransactionInput) (*domain.TransactionRecord, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	row := uc.rowFromInput(input)

	if uc.remote != nil {
		inserted, err := uc.remote.Insert(ctx, row)
		if err != nil {
			return nil, err
		}
		row = inserted
	}

	uc.fallback.Prepend(row)

	_, lookups, _ := uc.snapshotLookups(ctx)
	rec := domain.Normalize(row, lookups)

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
	}

	uc.logger.Info().
		Str("transaction_id", rec.ID).
		Str("nature", string(rec.Nature)).
		Int64("amount", rec.Amount).
		Msg("transaction created")

	return &rec, nil
}

// Accounts lists the known accounts sorted by name, with the usual advisory
// warning when served from the fallback.
func (uc *LedgerUseCase) Accounts(ctx context.Context) ([]domain.Account, string) {
	_, lookups, warning := uc.snapshotLookups(ctx)

	accounts := make([]domain.Account, 0, len(lookups.Accounts))
	for _, acc := range lookups.Accounts {
		accounts = append(accounts, acc)
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })

	return accounts, warning
}

// ResolveAccount implements AccountResolver.
func (uc *LedgerUseCase) ResolveAccount(ctx context.Context, id string) (*domain.Account, string, error) {
	_, lookups, warning := uc.snapshotLookups(ctx)

	acc, ok := lookups.Accounts[id]
	if !ok {
		return nil, warning, domain.ErrAccountNotFound
	}

	return &acc, warning, nil
}

// snapshot returns rows plus lookups, preferring the remote source. A
// successful remote read refreshes the fallback so it always holds the last
// known collection.
func (uc *LedgerUseCase) snapshot(ctx context.Context) ([]domain.RawRow, domain.Lookups, string) {
	if uc.remote == nil {
		rows, lookups := uc.fallback.Snapshot()
		return rows, lookups, warnNotConfigured
	}

	var rows []domain.RawRow
	err := uc.retrier.Retry(ctx, func() error {
		var fetchErr error
		rows, fetchErr = uc.remote.FetchRows(ctx)
		return fetchErr
	})

	if err == nil {
		var lookups domain.Lookups
		lookups, err = uc.lookups(ctx)
		if err == nil {
			uc.fallback.Replace(rows, lookups)
			return rows, lookups, ""
		}
	}

	uc.logger.Warn().Err(err).Msg("remote store unreachable, serving fallback snapshot")

	if uc.metrics != nil {
		uc.metrics.RemoteFailures.WithLabelValues("fetch_rows").Inc()
	}

	rows, lookups := uc.fallback.Snapshot()
	return rows, lookups, fmt.Sprintf("remote store unreachable; serving last known in-memory data: %v", err)
}

// snapshotLookups is snapshot without the row fetch, for callers that only
// need the reference tables.
func (uc *LedgerUseCase) snapshotLookups(ctx context.Context) ([]domain.RawRow, domain.Lookups, string) {
	if uc.remote == nil {
		rows, lookups := uc.fallback.Snapshot()
		return rows, lookups, warnNotConfigured
	}

	lookups, err := uc.lookups(ctx)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("remote store unreachable, serving fallback lookups")
		rows, fbLookups := uc.fallback.Snapshot()
		return rows, fbLookups, fmt.Sprintf("remote store unreachable; serving last known in-memory data: %v", err)
	}

	return nil, lookups, ""
}

// lookups fetches the reference tables, going through the cache when one is
// wired. Cache failures are not fatal, they just force a remote fetch.
func (uc *LedgerUseCase) lookups(ctx context.Context) (domain.Lookups, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, lookupsCacheKey); err == nil {
			var lookups domain.Lookups
			if err := json.Unmarshal(cached, &lookups); err == nil {
				return lookups, nil
			}
		}
	}

	var lookups domain.Lookups
	err := uc.retrier.Retry(ctx, func() error {
		var fetchErr error
		lookups, fetchErr = uc.remote.FetchLookups(ctx)
		return fetchErr
	})
	if err != nil {
		return domain.Lookups{}, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(lookups); err == nil {
			if err := uc.cache.Set(ctx, lookupsCacheKey, encoded, uc.lookupTTL); err != nil {
				uc.logger.Debug().Err(err).Msg("failed to cache lookups")
			}
		}
	}

	return lookups, nil
}

func (uc *LedgerUseCase) rowFromInput(input CreateTransactionInput) domain.RawRow {
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = defaultStatus
	}

	row := domain.RawRow{
		ID:            uc.idGen.Generate(),
		Date:          date,
		Amount:        input.Amount,
		Status:        &status,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		CategoryID:    input.CategoryID,
		ShopID:        input.ShopID,
		PersonID:      input.PersonID,
	}

	if input.FinalPrice != nil {
		row.FinalPrice = *input.FinalPrice
	}
	if input.Notes != "" {
		notes := input.Notes
		row.Notes = &notes
	}
	if input.Nature != "" {
		nature := input.Nature
		row.Nature = &nature
	}
	if input.CashbackPercent != nil {
		row.CashbackPercent = *input.CashbackPercent
	}
	if input.CashbackAmount != nil {
		row.CashbackAmount = *input.CashbackAmount
	}
	if input.DebtTag != "" {
		tag := input.DebtTag
		row.DebtTag = &tag
	}
	if input.DebtCycleTag != "" {
		tag := input.DebtCycleTag
		row.DebtCycleTag = &tag
	}

	return row
}

func validateCreate(input CreateTransactionInput) error {
	if input.Amount < 0 {
		return domain.ErrNegativeAmount
	}

	if nature, ok := domain.ParseNature(input.Nature); ok && nature == domain.NatureTransfer {
		if input.FromAccountID == nil || input.ToAccountID == nil {
			return domain.ErrMissingAccount
		}
		if *input.FromAccountID == *input.ToAccountID {
			return domain.ErrSameAccount
		}
	}

	return nil
}
