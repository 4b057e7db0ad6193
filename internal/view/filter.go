// Package view implements the listing views of the public site: each view
// holds a full collection in memory, reloaded after every mutation, and
// re-derives its filtered subset from scratch on every input change.
package view

import (
	"sort"
	"strings"
	"time"

	"serraturismo/internal/domain"
)

// EventFilter is the combinable filter set of the events listing. Zero
// values mean "no constraint".
type EventFilter struct {
	// Search matches case-insensitively against title, description, and location.
	Search string
	// Category must equal the event category exactly.
	Category string
	// Month must equal the event date's "YYYY-MM" prefix exactly.
	Month string
}

// AssociateFilter is the combinable filter set of the associate directory.
type AssociateFilter struct {
	// Search matches case-insensitively against the associate name.
	Search string
	// Category must equal the associate category exactly.
	Category string
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// MonthKey returns the "YYYY-MM" grouping key for a date.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MatchEvent reports whether e satisfies every set constraint in f.
func MatchEvent(e *domain.Event, f EventFilter) bool {
	if f.Search != "" &&
		!containsFold(e.Title, f.Search) &&
		!containsFold(e.Description, f.Search) &&
		!containsFold(e.Location, f.Search) {
		return false
	}
	if f.Category != "" && string(e.Category) != f.Category {
		return false
	}
	if f.Month != "" && MonthKey(e.Date) != f.Month {
		return false
	}
	return true
}

// FilterEvents returns the events satisfying f, preserving input order.
func FilterEvents(all []*domain.Event, f EventFilter) []*domain.Event {
	out := make([]*domain.Event, 0, len(all))
	for _, e := range all {
		if MatchEvent(e, f) {
			out = append(out, e)
		}
	}
	return out
}

// MatchAssociate reports whether a satisfies every set constraint in f.
func MatchAssociate(a *domain.Associate, f AssociateFilter) bool {
	if f.Search != "" && !containsFold(a.Name, f.Search) {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	return true
}

// FilterAssociates returns the associates satisfying f, preserving input order.
func FilterAssociates(all []*domain.Associate, f AssociateFilter) []*domain.Associate {
	out := make([]*domain.Associate, 0, len(all))
	for _, a := range all {
		if MatchAssociate(a, f) {
			out = append(out, a)
		}
	}
	return out
}

// ApprovedAssociates returns only the associates visible in the public directory.
func ApprovedAssociates(all []*domain.Associate) []*domain.Associate {
	out := make([]*domain.Associate, 0, len(all))
	for _, a := range all {
		if a.Status == domain.ReviewApproved {
			out = append(out, a)
		}
	}
	return out
}

// MonthSection is one year-month block of the sectioned events listing.
type MonthSection struct {
	Month  string          `json:"month"`
	Events []*domain.Event `json:"events"`
}

// GroupByMonth groups events by their "YYYY-MM" key into sections sorted
// ascending by month. Event order within a section follows input order.
func GroupByMonth(events []*domain.Event) []MonthSection {
	byMonth := make(map[string][]*domain.Event)
	for _, e := range events {
		k := MonthKey(e.Date)
		byMonth[k] = append(byMonth[k], e)
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sections := make([]MonthSection, 0, len(keys))
	for _, k := range keys {
		sections = append(sections, MonthSection{Month: k, Events: byMonth[k]})
	}
	return sections
}

// AvailableMonths returns the distinct "YYYY-MM" keys across all events,
// sorted ascending. Used to populate the month filter control.
func AvailableMonths(events []*domain.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		k := MonthKey(e.Date)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
