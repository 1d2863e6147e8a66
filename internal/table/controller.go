package table

import "sync"

// SortState is the column a table is sorted by.
type SortState struct {
	Key       string
	Direction Direction
}

// Toggle selects key. Selecting the current key flips the direction; a new key
// starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key && s.Direction == Asc {
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Asc}
}

// Controller holds the interactive state of one table: records, search,
// filters, sort and the current page.
type Controller[T any] struct {
	mu       sync.Mutex
	records  []T
	get      Accessor[T]
	search   string
	filters  map[string]string
	sort     SortState
	page     int
	pageSize int
}

// NewController creates a controller on page 1 with no sort applied.
func NewController[T any](records []T, get Accessor[T], pageSize int) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		records:  records,
		get:      get,
		filters:  make(map[string]string),
		page:     1,
		pageSize: pageSize,
	}
}

// SetRecords replaces the underlying collection and resets to page 1.
func (c *Controller[T]) SetRecords(records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.page = 1
}

// SetSearch changes the search query and resets to page 1.
func (c *Controller[T]) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = q
	c.page = 1
}

// SetFilter sets a categorical filter and resets to page 1. An empty value or
// "all" clears it.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" || value == "all" {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.page = 1
}

// ToggleSort selects a sort column. The current page is kept.
func (c *Controller[T]) ToggleSort(key string) SortState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = c.sort.Toggle(key)
	return c.sort
}

// SetPage moves to page p; out of range values are clamped on the next View.
func (c *Controller[T]) SetPage(p int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = p
}

// Next moves one page forward, bounded by the available pages.
func (c *Controller[T]) Next() Page[T] {
	c.mu.Lock()
	c.page++
	c.mu.Unlock()
	return c.View()
}

// Prev moves one page back, never before page 1.
func (c *Controller[T]) Prev() Page[T] {
	c.mu.Lock()
	c.page--
	c.mu.Unlock()
	return c.View()
}

// View renders the current page and stores the clamped page index.
func (c *Controller[T]) View() Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	filters := make(map[string]string, len(c.filters))
	for k, v := range c.filters {
		filters[k] = v
	}
	p := View(c.records, c.get, Query{
		Search:    c.search,
		SortKey:   c.sort.Key,
		Direction: c.sort.Direction,
		Filters:   filters,
		Page:      c.page,
		PageSize:  c.pageSize,
	})
	c.page = p.Page
	return p
}
