package domain

// RawRow is a transaction row as it arrives from a source, before lookup
// resolution. Numeric-like fields are typed any because rows come in with
// numbers encoded as strings, floats, ints or json.Number depending on the
// source; Normalize coerces them.
type RawRow struct {
	ID              string
	Date            string
	Amount          any
	FinalPrice      any
	Notes           *string
	Status          *string
	Nature          *string
	FromAccountID   *string
	ToAccountID     *string
	CategoryID      *string
	ShopID          *string
	PersonID        *string
	CashbackPercent any
	CashbackAmount  any
	DebtTag         *string
	DebtCycleTag    *string
}

// Lookups are the reference tables a row's foreign keys resolve against.
type Lookups struct {
	Accounts   map[string]Account
	Categories map[string]Category
	Shops      map[string]Ref
	People     map[string]Ref
}
