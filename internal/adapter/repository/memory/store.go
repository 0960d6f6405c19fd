// Package memory holds the in-memory transaction collection the service
// serves from when the remote store is missing or unreachable.
package memory

import (
	"context"
	"sync"

	"github.com/iho/moneybook/internal/domain"
)

// Store keeps raw rows and lookup tables behind a mutex. Snapshots are
// copy-on-write: readers get the current slices and maps, writers build
// fresh ones and swap, so a snapshot stays valid while writes land.
type Store struct {
	mu      sync.RWMutex
	rows    []domain.RawRow
	lookups domain.Lookups
	version uint64
}

// New creates an empty Store.
func New() *Store {
	return &Store{lookups: emptyLookups()}
}

func emptyLookups() domain.Lookups {
	return domain.Lookups{
		Accounts:   map[string]domain.Account{},
		Categories: map[string]domain.Category{},
		Shops:      map[string]domain.Ref{},
		People:     map[string]domain.Ref{},
	}
}

// Snapshot returns the current rows and lookups. Callers must not mutate
// either.
func (s *Store) Snapshot() ([]domain.RawRow, domain.Lookups) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows, s.lookups
}

// Replace swaps the whole collection, keeping prior snapshots intact.
func (s *Store) Replace(rows []domain.RawRow, lookups domain.Lookups) {
	copied := make([]domain.RawRow, len(rows))
	copy(copied, rows)
	if lookups.Accounts == nil {
		lookups = emptyLookups()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = copied
	s.lookups = lookups
	s.version++
}

// Prepend adds a row at the head so the newest entry lists first.
func (s *Store) Prepend(row domain.RawRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.RawRow, 0, len(s.rows)+1)
	next = append(next, row)
	next = append(next, s.rows...)
	s.rows = next
	s.version++
}

// Version counts writes since creation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// FetchRows lets a Store stand in for a remote transaction source.
func (s *Store) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	rows, _ := s.Snapshot()
	return rows, nil
}

// FetchLookups returns the lookup tables.
func (s *Store) FetchLookups(ctx context.Context) (domain.Lookups, error) {
	_, lookups := s.Snapshot()
	return lookups, nil
}

// Insert stores the row and returns it unchanged.
func (s *Store) Insert(ctx context.Context, row domain.RawRow) (domain.RawRow, error) {
	s.Prepend(row)
	return row, nil
}
