package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// TransactionRepository implements usecase.TransactionSource on PostgreSQL.
// Dates travel as ISO-8601 text, amounts as bigint, cashback percent as
// numeric; normalization happens in the domain layer, not here.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const selectTransactions = `
SELECT id, date, amount, final_price, notes, status, nature,
       from_account_id, to_account_id, category_id, shop_id, person_id,
       cashback_percent, cashback_amount, debt_tag, debt_cycle_tag
FROM transactions
ORDER BY date DESC, id DESC`

// FetchRows reads the whole transaction collection, newest first.
func (r *TransactionRepository) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	rows, err := r.pool.Query(ctx, selectTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RawRow
	for rows.Next() {
		row, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// FetchLookups reads all four reference tables.
func (r *TransactionRepository) FetchLookups(ctx context.Context) (domain.Lookups, error) {
	lookups := domain.Lookups{
		Accounts:   map[string]domain.Account{},
		Categories: map[string]domain.Category{},
		Shops:      map[string]domain.Ref{},
		People:     map[string]domain.Ref{},
	}

	if err := r.fetchAccounts(ctx, lookups.Accounts); err != nil {
		return domain.Lookups{}, err
	}
	if err := r.fetchCategories(ctx, lookups.Categories); err != nil {
		return domain.Lookups{}, err
	}
	if err := r.fetchRefs(ctx, `SELECT id, name FROM shops`, lookups.Shops); err != nil {
		return domain.Lookups{}, err
	}
	if err := r.fetchRefs(ctx, `SELECT id, name FROM people`, lookups.People); err != nil {
		return domain.Lookups{}, err
	}

	return lookups, nil
}

const insertTransaction = `
INSERT INTO transactions (
	id, date, amount, final_price, notes, status, nature,
	from_account_id, to_account_id, category_id, shop_id, person_id,
	cashback_percent, cashback_amount, debt_tag, debt_cycle_tag
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING id, date, amount, final_price, notes, status, nature,
          from_account_id, to_account_id, category_id, shop_id, person_id,
          cashback_percent, cashback_amount, debt_tag, debt_cycle_tag`

// Insert persists one row and returns it as stored.
func (r *TransactionRepository) Insert(ctx context.Context, row domain.RawRow) (domain.RawRow, error) {
	amount, _ := coerce(row.Amount)
	finalPrice, hasFinal := coerce(row.FinalPrice)
	if !hasFinal {
		finalPrice = amount
	}

	stored, err := scanTransaction(r.pool.QueryRow(ctx, insertTransaction,
		row.ID, row.Date, amount, finalPrice,
		row.Notes, row.Status, row.Nature,
		row.FromAccountID, row.ToAccountID, row.CategoryID, row.ShopID, row.PersonID,
		decimalPtrToNumeric(coerceDecimalPtr(row.CashbackPercent)), coerceAnyInt(row.CashbackAmount),
		row.DebtTag, row.DebtCycleTag,
	))
	if err != nil {
		return domain.RawRow{}, err
	}

	return stored, nil
}

func (r *TransactionRepository) fetchAccounts(ctx context.Context, dst map[string]domain.Account) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, cashback_eligible, cashback_percentage, max_cashback_amount FROM accounts`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			acc     domain.Account
			pct     pgtype.Numeric
			maxAmnt pgtype.Numeric
		)
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.CashbackEligible, &pct, &maxAmnt); err != nil {
			return err
		}
		acc.CashbackPercentage = numericToDecimalPtr(pct)
		acc.MaxCashbackAmount = numericToDecimalPtr(maxAmnt)
		dst[acc.ID] = acc
	}

	return rows.Err()
}

func (r *TransactionRepository) fetchCategories(ctx context.Context, dst map[string]domain.Category) error {
	rows, err := r.pool.Query(ctx, `SELECT id, name, nature FROM categories`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cat  domain.Category
			code string
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &code); err != nil {
			return err
		}
		if nature, ok := domain.ParseNature(code); ok {
			cat.Nature = nature
		}
		dst[cat.ID] = cat
	}

	return rows.Err()
}

func (r *TransactionRepository) fetchRefs(ctx context.Context, query string, dst map[string]domain.Ref) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ref domain.Ref
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return err
		}
		dst[ref.ID] = ref
	}

	return rows.Err()
}

func scanTransaction(row pgx.Row) (domain.RawRow, error) {
	var (
		r          domain.RawRow
		amount     int64
		finalPrice *int64
		percent    pgtype.Numeric
		cbAmount   *int64
	)

	err := row.Scan(
		&r.ID, &r.Date, &amount, &finalPrice,
		&r.Notes, &r.Status, &r.Nature,
		&r.FromAccountID, &r.ToAccountID, &r.CategoryID, &r.ShopID, &r.PersonID,
		&percent, &cbAmount,
		&r.DebtTag, &r.DebtCycleTag,
	)
	if err != nil {
		return domain.RawRow{}, err
	}

	r.Amount = amount
	if finalPrice != nil {
		r.FinalPrice = *finalPrice
	}
	if d := numericToDecimalPtr(percent); d != nil {
		r.CashbackPercent = d.String()
	}
	if cbAmount != nil {
		r.CashbackAmount = *cbAmount
	}

	return r, nil
}

// Type conversion helpers.
func numericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return &d
}

func decimalPtrToNumeric(d *decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	if d == nil {
		return n
	}
	_ = n.Scan(d.String())

	return n
}

func coerce(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case decimal.Decimal:
		return t.IntPart(), true
	case *decimal.Decimal:
		if t == nil {
			return 0, false
		}
		return t.IntPart(), true
	default:
		return 0, false
	}
}

func coerceAnyInt(v any) *int64 {
	if n, ok := coerce(v); ok {
		return &n
	}
	return nil
}

func coerceDecimalPtr(v any) *decimal.Decimal {
	switch t := v.(type) {
	case string:
		if d, err := decimal.NewFromString(t); err == nil {
			return &d
		}
	case float64:
		d := decimal.NewFromFloat(t)
		return &d
	case int64:
		d := decimal.NewFromInt(t)
		return &d
	case decimal.Decimal:
		return &t
	case *decimal.Decimal:
		return t
	}
	return nil
}
