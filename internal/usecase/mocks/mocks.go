package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/moneybook/internal/domain"
)

// MockTransactionSource is a mock implementation of TransactionSource.
type MockTransactionSource struct {
	mu   sync.RWMutex
	rows []domain.RawRow
	look domain.Lookups

	FetchRowsFunc    func(ctx context.Context) ([]domain.RawRow, error)
	FetchLookupsFunc func(ctx context.Context) (domain.Lookups, error)
	InsertFunc       func(ctx context.Context, row domain.RawRow) (domain.RawRow, error)
}

func NewMockTransactionSource(rows []domain.RawRow, lookups domain.Lookups) *MockTransactionSource {
	return &MockTransactionSource{rows: rows, look: lookups}
}

func (m *MockTransactionSource) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	if m.FetchRowsFunc != nil {
		return m.FetchRowsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rows, nil
}

func (m *MockTransactionSource) FetchLookups(ctx context.Context) (domain.Lookups, error) {
	if m.FetchLookupsFunc != nil {
		return m.FetchLookupsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.look, nil
}

func (m *MockTransactionSource) Insert(ctx context.Context, row domain.RawRow) (domain.RawRow, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, row)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append([]domain.RawRow{row}, m.rows...)
	return row, nil
}

// MockFallbackStore is a mock implementation of FallbackStore.
type MockFallbackStore struct {
	mu   sync.RWMutex
	rows []domain.RawRow
	look domain.Lookups

	ReplaceCalls int
	PrependCalls int
}

func NewMockFallbackStore(rows []domain.RawRow, lookups domain.Lookups) *MockFallbackStore {
	return &MockFallbackStore{rows: rows, look: lookups}
}

func (m *MockFallbackStore) Snapshot() ([]domain.RawRow, domain.Lookups) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rows, m.look
}

func (m *MockFallbackStore) Replace(rows []domain.RawRow, lookups domain.Lookups) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = rows
	m.look = lookups
	m.ReplaceCalls++
}

func (m *MockFallbackStore) Prepend(row domain.RawRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append([]domain.RawRow{row}, m.rows...)
	m.PrependCalls++
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "mock-id-" + string(rune('0'+m.next%10))
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

var errCacheMiss = cacheMissError{}
