package memory

import (
	"context"
	"testing"

	"github.com/iho/moneybook/internal/domain"
)

func TestStore_SnapshotIsStableAcrossWrites(t *testing.T) {
	s := New()
	s.Replace([]domain.RawRow{{ID: "tx-1"}, {ID: "tx-2"}}, domain.Lookups{})

	rows, _ := s.Snapshot()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	s.Prepend(domain.RawRow{ID: "tx-3"})
	s.Replace([]domain.RawRow{{ID: "tx-9"}}, domain.Lookups{})

	if len(rows) != 2 || rows[0].ID != "tx-1" {
		t.Errorf("earlier snapshot changed after writes: %+v", rows)
	}

	fresh, _ := s.Snapshot()
	if len(fresh) != 1 || fresh[0].ID != "tx-9" {
		t.Errorf("fresh snapshot = %+v, want the replaced collection", fresh)
	}
}

func TestStore_PrependPutsNewestFirst(t *testing.T) {
	s := New()
	s.Prepend(domain.RawRow{ID: "tx-1"})
	s.Prepend(domain.RawRow{ID: "tx-2"})

	rows, _ := s.Snapshot()
	if rows[0].ID != "tx-2" || rows[1].ID != "tx-1" {
		t.Errorf("order = [%s %s], want newest first", rows[0].ID, rows[1].ID)
	}
}

func TestStore_VersionCountsWrites(t *testing.T) {
	s := New()
	if s.Version() != 0 {
		t.Fatalf("Version() = %d, want 0", s.Version())
	}
	s.Replace(nil, domain.Lookups{})
	s.Prepend(domain.RawRow{ID: "tx-1"})
	if s.Version() != 2 {
		t.Errorf("Version() = %d, want 2", s.Version())
	}
}

func TestStore_ReplaceDefendsAgainstNilLookups(t *testing.T) {
	s := New()
	s.Replace(nil, domain.Lookups{})

	lookups, err := s.FetchLookups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookups.Accounts == nil || lookups.Categories == nil {
		t.Error("expected initialized lookup maps")
	}
}

func TestNewSeeded(t *testing.T) {
	s := NewSeeded()

	rows, lookups := s.Snapshot()
	if len(rows) == 0 {
		t.Fatal("expected seeded rows")
	}
	if _, ok := lookups.Accounts["acc-tcb"]; !ok {
		t.Error("expected cashback-eligible seed account")
	}

	for _, row := range rows {
		rec := domain.Normalize(row, lookups)
		if rec.ID == "" || rec.Date.IsZero() {
			t.Errorf("seed row %q does not normalize cleanly: %+v", row.ID, rec)
		}
		if err := rec.Validate(); err != nil {
			t.Errorf("seed row %q invalid: %v", row.ID, err)
		}
	}
}
