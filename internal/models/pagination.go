package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PaginationParams struct {
	Page  int
	Limit int
}

// WithDefaults replaces a non-positive Page or Limit with its default.
func (p PaginationParams) WithDefaults() PaginationParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Normalize applies WithDefaults and caps Limit at maxLimit. A non-positive
// maxLimit means MaxLimit.
func (p PaginationParams) Normalize(maxLimit int) PaginationParams {
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}
	p = p.WithDefaults()
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset is the number of rows skipped before the requested page. It
// saturates at math.MaxInt rather than overflowing for very large pages.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit), or 0 when either side is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type PaginatedList[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageMeta `json:"pagination"`
}

func NewPaginatedList[T any](data []T, total int, params PaginationParams) PaginatedList[T] {
	// Ensure data is an empty slice instead of nil for JSON consistency
	if data == nil {
		data = []T{}
	}
	return PaginatedList[T]{
		Data: data,
		Pagination: PageMeta{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: TotalPages(total, params.Limit),
		},
	}
}
