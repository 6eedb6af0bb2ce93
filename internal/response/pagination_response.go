package response

import "math"

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

const DefaultPageSize = 20

// NewPagination describes page of pageSize over total items. From is 1-based
// and 0 when the page is empty; To is inclusive.
func NewPagination(page, pageSize, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	from := min((page-1)*pageSize, total)
	to := min(from+pageSize, total)

	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64(math.Ceil(float64(total) / float64(pageSize))),
		TotalItems: int64(total),
		HasMore:    to < total,
		To:         to,
	}
	if to > from {
		p.From = from + 1
	}
	return p
}

// Bounds returns the half-open slice range [lo, hi) covered by the page.
func (p *Pagination) Bounds() (lo, hi int) {
	if p.From == 0 {
		return p.To, p.To
	}
	return p.From - 1, p.To
}
