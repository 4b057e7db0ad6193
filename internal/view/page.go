package view

import "serraturismo/internal/domain"

// Page is one page of a filtered listing.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate slices items for the requested page. Pages are 1-based; out-of-range
// pages return an empty item list with the metadata still filled in.
func Paginate[T any](items []T, p domain.PaginationParams) Page[T] {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	total := len(items)
	totalPages := (total + p.PageSize - 1) / p.PageSize
	start := p.Offset()
	end := start + p.PageSize
	var pageItems []T
	if start < total {
		if end > total {
			end = total
		}
		pageItems = items[start:end]
	} else {
		pageItems = []T{}
	}
	return Page[T]{
		Items:      pageItems,
		Number:     p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1 && total > 0,
	}
}
