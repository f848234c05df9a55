// Package paging turns page/limit request values into an offset window.
//
// Pages are 1-based. Missing, non-numeric or non-positive values fall back
// to the first page and DefaultLimit respectively:
//
//	p := paging.Normalize(paging.ParsePage(c.Query("page")), paging.ParseLimit(c.Query("limit")))
//	rows := fetch(p.Limit, p.Skip())
//	pages := paging.NumPages(total, p.Limit)
package paging

import "strconv"

const DefaultLimit = 4

// Params is a normalized pagination request.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies the page and limit defaults.
func Normalize(page, limit int) Params {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// Skip is the number of matching rows before this page. Callers check
// InRange first; for a page past the end the product may overflow.
func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// InRange reports whether the page holds at least one of total rows. When
// it does, Skip is below total and cannot overflow.
func (p Params) InRange(total int64) bool {
	return p.Page >= 1 && p.Page <= NumPages(total, p.Limit)
}

// ParsePage reads a raw page value; anything unusable means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// ParseLimit reads a raw limit value; anything unusable means DefaultLimit.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	return n
}

// NumPages returns ceil(total/limit), zero when there is nothing to page.
func NumPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	n := total / l
	if total%l != 0 {
		n++
	}
	return int(n)
}
