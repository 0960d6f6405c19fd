package memory

import (
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// NewSeeded creates a Store pre-filled with a small realistic dataset so the
// service is usable before any remote store is configured.
func NewSeeded() *Store {
	s := New()
	s.Replace(seedRows(), seedLookups())
	return s
}

func seedLookups() domain.Lookups {
	tcbPct := decimal.RequireFromString("0.05")
	tcbMax := decimal.NewFromInt(30000)

	return domain.Lookups{
		Accounts: map[string]domain.Account{
			"acc-cash": {ID: "acc-cash", Name: "Ví tiền mặt"},
			"acc-tcb": {
				ID:                 "acc-tcb",
				Name:               "Thẻ tín dụng Techcombank",
				CashbackEligible:   true,
				CashbackPercentage: &tcbPct,
				MaxCashbackAmount:  &tcbMax,
			},
		},
		Categories: map[string]domain.Category{
			"cat-food":     {ID: "cat-food", Name: "Ăn uống", Nature: domain.NatureExpense},
			"cat-salary":   {ID: "cat-salary", Name: "Lương", Nature: domain.NatureIncome},
			"cat-transfer": {ID: "cat-transfer", Name: "Chuyển khoản", Nature: domain.NatureTransfer},
			"cat-debt":     {ID: "cat-debt", Name: "Cho vay", Nature: domain.NatureDebt},
		},
		Shops: map[string]domain.Ref{
			"shop-tn":   {ID: "shop-tn", Name: "Cà phê Trung Nguyên"},
			"shop-bach": {ID: "shop-bach", Name: "Bách hóa Xanh"},
		},
		People: map[string]domain.Ref{
			"person-minh": {ID: "person-minh", Name: "Minh"},
		},
	}
}

func seedRows() []domain.RawRow {
	var (
		active   = "Active"
		expense  = "EX"
		income   = "IN"
		transfer = "TF"
		debt     = "DEBT"

		cash = "acc-cash"
		tcb  = "acc-tcb"

		food      = "cat-food"
		salary    = "cat-salary"
		transfers = "cat-transfer"
		lending   = "cat-debt"

		coffee  = "shop-tn"
		grocery = "shop-bach"
		minh    = "person-minh"

		cycle = "2024-03"
	)

	note := func(s string) *string { return &s }

	return []domain.RawRow{
		{
			ID: "tx-0008", Date: "2024-03-28", Amount: int64(65000), FinalPrice: int64(65000),
			Notes: note("Cà phê sáng"), Status: &active, Nature: &expense,
			FromAccountID: &tcb, CategoryID: &food, ShopID: &coffee,
		},
		{
			ID: "tx-0007", Date: "2024-03-25", Amount: int64(1250000), FinalPrice: int64(1220000),
			Notes: note("Đi chợ cuối tuần"), Status: &active, Nature: &expense,
			FromAccountID: &tcb, CategoryID: &food, ShopID: &grocery,
			CashbackPercent: "2.4", CashbackAmount: int64(30000),
		},
		{
			ID: "tx-0006", Date: "2024-03-20", Amount: int64(2000000),
			Notes: note("Cho Minh vay"), Status: &active, Nature: &debt,
			FromAccountID: &cash, CategoryID: &lending, PersonID: &minh,
			DebtTag: &minh, DebtCycleTag: &cycle,
		},
		{
			ID: "tx-0005", Date: "2024-03-15", Amount: int64(5000000),
			Notes: note("Rút về ví"), Status: &active, Nature: &transfer,
			FromAccountID: &tcb, ToAccountID: &cash, CategoryID: &transfers,
		},
		{
			ID: "tx-0004", Date: "2024-03-10", Amount: int64(45000),
			Notes: note("Trà đá vỉa hè"), Status: &active, Nature: &expense,
			FromAccountID: &cash, CategoryID: &food,
		},
		{
			ID: "tx-0003", Date: "2024-03-05", Amount: int64(18000000),
			Notes: note("Lương tháng 3"), Status: &active, Nature: &income,
			ToAccountID: &tcb, CategoryID: &salary,
		},
		{
			ID: "tx-0002", Date: "2024-03-02", Amount: int64(320000),
			Notes: note("Ăn tối với đồng nghiệp"), Status: &active, Nature: &expense,
			FromAccountID: &tcb, CategoryID: &food, ShopID: &coffee,
		},
		{
			ID: "tx-0001", Date: "2024-03-01", Amount: int64(120000),
			Notes: note("Gửi xe tháng 3"), Status: &active, Nature: &expense,
			FromAccountID: &cash,
		},
	}
}
