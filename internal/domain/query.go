package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/iho/moneybook/internal/numerals"
)

// NatureAll passes every record through the nature filter.
const NatureAll = "ALL"

// Pagination bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery describes one listing request over the canonical collection.
// All filters are conjunctive; zero values pass everything.
type ListQuery struct {
	Nature     string
	AccountID  string
	CategoryID string
	Status     string
	DateFrom   *time.Time // inclusive, widened to start of day
	DateTo     *time.Time // inclusive, widened to end of day
	Search     string
	Page       int // 1-indexed
	PageSize   int
}

// ListResult is one page of matches plus the pre-pagination match count.
type ListResult struct {
	Data  []TransactionRecord
	Total int
}

// RunQuery filters, sorts and paginates records. The sort is by date
// descending and stable, so records sharing a date keep their input order.
// Total always counts every match, not just the returned page.
func RunQuery(records []TransactionRecord, q ListQuery) ListResult {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]TransactionRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, q, search) {
			filtered = append(filtered, rec)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	page, size := NormalizePagination(q.Page, q.PageSize)

	start := (page - 1) * size
	if start >= len(filtered) {
		return ListResult{Data: []TransactionRecord{}, Total: len(filtered)}
	}

	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	data := make([]TransactionRecord, end-start)
	copy(data, filtered[start:end])

	return ListResult{Data: data, Total: len(filtered)}
}

func matches(rec TransactionRecord, q ListQuery, search string) bool {
	if nature := strings.ToUpper(strings.TrimSpace(q.Nature)); nature != "" && nature != NatureAll {
		if string(rec.Nature) != nature {
			return false
		}
	}

	if q.AccountID != "" {
		fromMatch := rec.FromAccount != nil && rec.FromAccount.ID == q.AccountID
		toMatch := rec.ToAccount != nil && rec.ToAccount.ID == q.AccountID
		if !fromMatch && !toMatch {
			return false
		}
	}

	if q.CategoryID != "" {
		if rec.Category == nil || rec.Category.ID != q.CategoryID {
			return false
		}
	}

	if q.Status != "" && rec.Status != q.Status {
		return false
	}

	if q.DateFrom != nil {
		from := startOfDay(*q.DateFrom)
		if rec.Date.Before(from) {
			return false
		}
	}

	if q.DateTo != nil {
		end := startOfDay(*q.DateTo).Add(24 * time.Hour)
		if !rec.Date.Before(end) {
			return false
		}
	}

	if search != "" && !matchesSearch(rec, search) {
		return false
	}

	return true
}

// matchesSearch checks the term against every textual facet of the record,
// including the Vietnamese spelling of its amount so "nghìn" finds
// round-thousand transactions.
func matchesSearch(rec TransactionRecord, term string) bool {
	haystacks := []string{
		rec.Notes,
		numerals.Render(rec.Amount),
	}
	if rec.Category != nil {
		haystacks = append(haystacks, rec.Category.Name)
	}
	if rec.Shop != nil {
		haystacks = append(haystacks, rec.Shop.Name)
	}
	if rec.FromAccount != nil {
		haystacks = append(haystacks, rec.FromAccount.Name)
	}
	if rec.ToAccount != nil {
		haystacks = append(haystacks, rec.ToAccount.Name)
	}
	if rec.Person != nil {
		haystacks = append(haystacks, rec.Person.Name)
	}

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), term) {
			return true
		}
	}
	return false
}

// NormalizePagination clamps a page number and page size to the bounds
// RunQuery paginates with, so callers can report the values actually served.
func NormalizePagination(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
