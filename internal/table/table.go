// Package table implements search, categorical filtering, sorting and pagination
// over in-memory record collections.
package table

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultPageSize is the candidate table page size.
const DefaultPageSize = 5

// Accessor exposes every value of a record as text, keyed by column name.
type Accessor[T any] func(T) map[string]string

// Query describes one view of a collection.
type Query struct {
	Search string
	// SearchIn restricts the search to these columns; empty searches all of them.
	SearchIn  []string
	SortKey   string
	Direction Direction
	// Filters are exact-match categorical filters, AND-ed with the search.
	// An empty value or "all" disables the filter.
	Filters  map[string]string
	Page     int
	PageSize int
}

// Page is the result of applying a Query.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	TotalCount int  `json:"total_count"`
	Empty      bool `json:"empty"`
}

type row[T any] struct {
	item T
	cols map[string]string
}

// View filters, sorts and paginates records. The input slice is not modified.
func View[T any](records []T, get Accessor[T], q Query) Page[T] {
	rows := filterRows(rowsOf(records, get), q.Search, q.SearchIn, q.Filters)
	sortRows(rows, q.SortKey, q.Direction)

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(rows)
	totalPages := (total + size - 1) / size
	page := Clamp(q.Page, totalPages)

	start := (page - 1) * size
	end := min(start+size, total)

	items := make([]T, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		items = append(items, rows[i].item)
	}

	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalCount: total,
		Empty:      total == 0,
	}
}

// Clamp limits page to [1, max(1, totalPages)].
func Clamp(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func rowsOf[T any](records []T, get Accessor[T]) []row[T] {
	rows := make([]row[T], len(records))
	for i, r := range records {
		rows[i] = row[T]{item: r, cols: get(r)}
	}
	return rows
}

// Filter returns the records matching the search query and every categorical
// filter, in their original order.
func Filter[T any](records []T, get Accessor[T], search string, filters map[string]string) []T {
	return itemsOf(filterRows(rowsOf(records, get), search, nil, filters))
}

// Sort returns a sorted copy of records.
func Sort[T any](records []T, get Accessor[T], key string, dir Direction) []T {
	rows := rowsOf(records, get)
	sortRows(rows, key, dir)
	return itemsOf(rows)
}

func itemsOf[T any](rows []row[T]) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

func filterRows[T any](rows []row[T], search string, in []string, filters map[string]string) []row[T] {
	needle := fold(search)
	out := make([]row[T], 0, len(rows))
	for _, r := range rows {
		if !matchesFilters(r.cols, filters) {
			continue
		}
		if needle != "" && !matchesSearch(r.cols, needle, in) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesFilters(cols map[string]string, filters map[string]string) bool {
	for k, want := range filters {
		if want == "" || want == "all" {
			continue
		}
		if cols[k] != want {
			return false
		}
	}
	return true
}

func matchesSearch(cols map[string]string, needle string, in []string) bool {
	if len(in) > 0 {
		for _, k := range in {
			if strings.Contains(fold(cols[k]), needle) {
				return true
			}
		}
		return false
	}
	for _, v := range cols {
		if strings.Contains(fold(v), needle) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// sortRows orders rows by the text of key. Ties keep insertion order; an empty
// key leaves the order untouched.
func sortRows[T any](rows []row[T], key string, dir Direction) {
	if key == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].cols[key], rows[j].cols[key]
		if dir == Desc {
			return a > b
		}
		return a < b
	})
}
