package view

import (
	"context"
	"sync"

	"serraturismo/internal/domain"
)

// EventsBoard is the state container behind the public events listing. Like
// the directory it caches the full collection; results render as year-month
// sections. Reload must be called after every event mutation.
type EventsBoard struct {
	repo     domain.EventRepository
	debounce *Debouncer

	mu     sync.RWMutex
	all    []*domain.Event
	filter EventFilter
}

// NewEventsBoard returns an empty board; call Reload before reading.
func NewEventsBoard(repo domain.EventRepository) *EventsBoard {
	return &EventsBoard{
		repo:     repo,
		debounce: NewDebouncer(SearchDebounce),
	}
}

// Reload replaces the cached collection with a fresh full fetch.
func (b *EventsBoard) Reload(ctx context.Context) error {
	all, err := b.repo.List(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.all = all
	b.mu.Unlock()
	return nil
}

// SetSearch updates the text filter after the debounce window settles.
func (b *EventsBoard) SetSearch(q string) {
	b.debounce.Do(func() {
		b.mu.Lock()
		b.filter.Search = q
		b.mu.Unlock()
	})
}

// SetCategory updates the category filter immediately.
func (b *EventsBoard) SetCategory(category string) {
	b.mu.Lock()
	b.filter.Category = category
	b.mu.Unlock()
}

// SetMonth updates the year-month filter immediately.
func (b *EventsBoard) SetMonth(month string) {
	b.mu.Lock()
	b.filter.Month = month
	b.mu.Unlock()
}

// Sections returns the filtered events grouped into year-month sections
// under the container's own filter state.
func (b *EventsBoard) Sections() []MonthSection {
	b.mu.RLock()
	f := b.filter
	b.mu.RUnlock()
	return b.QuerySections(f)
}

// QuerySections filters the cached collection with caller-supplied
// parameters and groups the result by month. Safe for concurrent use.
func (b *EventsBoard) QuerySections(f EventFilter) []MonthSection {
	b.mu.RLock()
	all := b.all
	b.mu.RUnlock()
	return GroupByMonth(FilterEvents(all, f))
}

// Query filters the cached collection without grouping.
func (b *EventsBoard) Query(f EventFilter) []*domain.Event {
	b.mu.RLock()
	all := b.all
	b.mu.RUnlock()
	return FilterEvents(all, f)
}

// Months returns the distinct year-month keys across all loaded events,
// regardless of the active filter.
func (b *EventsBoard) Months() []string {
	b.mu.RLock()
	all := b.all
	b.mu.RUnlock()
	return AvailableMonths(all)
}
