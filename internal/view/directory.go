package view

import (
	"context"
	"sync"
	"time"

	"serraturismo/internal/domain"
)

// DirectoryPageSize is the fixed page size of the associate directory.
const DirectoryPageSize = 8

// SearchDebounce is how long search input must settle before a filter pass runs.
const SearchDebounce = 300 * time.Millisecond

// AssociateDirectory is the state container behind the public associate
// directory. It caches the full collection and re-derives the visible page
// from it on every input change. Reload must be called after every mutation
// that can affect the directory.
type AssociateDirectory struct {
	repo     domain.AssociateRepository
	pageSize int
	debounce *Debouncer

	mu     sync.RWMutex
	all    []*domain.Associate
	filter AssociateFilter
	page   int
}

// NewAssociateDirectory returns an empty directory; call Reload before reading.
func NewAssociateDirectory(repo domain.AssociateRepository) *AssociateDirectory {
	return &AssociateDirectory{
		repo:     repo,
		pageSize: DirectoryPageSize,
		debounce: NewDebouncer(SearchDebounce),
		page:     1,
	}
}

// Reload replaces the cached collection with a fresh full fetch.
func (d *AssociateDirectory) Reload(ctx context.Context) error {
	all, err := d.repo.List(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.all = all
	d.mu.Unlock()
	return nil
}

// SetSearch updates the name filter after the debounce window settles.
// Rapid successive calls collapse into one filter pass with the last value.
// The page resets to 1 when the filter applies.
func (d *AssociateDirectory) SetSearch(q string) {
	d.debounce.Do(func() {
		d.mu.Lock()
		d.filter.Search = q
		d.page = 1
		d.mu.Unlock()
	})
}

// SetCategory updates the category filter immediately and resets the page to 1.
func (d *AssociateDirectory) SetCategory(category string) {
	d.mu.Lock()
	d.filter.Category = category
	d.page = 1
	d.mu.Unlock()
}

// SetPage moves to the given 1-based page.
func (d *AssociateDirectory) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	d.mu.Lock()
	d.page = page
	d.mu.Unlock()
}

// Current returns the visible page under the container's own filter state.
func (d *AssociateDirectory) Current() Page[*domain.Associate] {
	d.mu.RLock()
	f, page := d.filter, d.page
	d.mu.RUnlock()
	return d.Query(f, domain.PaginationParams{Page: page, PageSize: d.pageSize})
}

// Query filters and paginates the cached collection with caller-supplied
// parameters. Only approved associates are visible. Safe for concurrent use;
// HTTP handlers use this form so requests do not share filter state.
func (d *AssociateDirectory) Query(f AssociateFilter, p domain.PaginationParams) Page[*domain.Associate] {
	if p.PageSize < 1 {
		p.PageSize = d.pageSize
	}
	d.mu.RLock()
	all := d.all
	d.mu.RUnlock()
	filtered := FilterAssociates(ApprovedAssociates(all), f)
	return Paginate(filtered, p)
}

// All returns the cached collection unfiltered (admin listing).
func (d *AssociateDirectory) All() []*domain.Associate {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.all
}
