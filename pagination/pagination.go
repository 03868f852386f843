// Package pagination turns raw page/limit query input into window parameters
// and computes result-set metadata.
package pagination

import (
	"fmt"
	"strconv"
)

const (
	// DefaultPage is the page assumed when the client asks for a limit only.
	DefaultPage = 1
	// DefaultLimit is the system-wide page size when the client and the
	// resource both leave it unset.
	DefaultLimit = 50
)

// Params is a resolved query window. When Enabled is false the caller should
// fetch without skip/limit; Page and Limit are still populated so metadata
// math stays safe.
type Params struct {
	Page    int
	Limit   int
	Offset  int64
	Enabled bool
}

// Meta describes a windowed result set's position within the full result.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// Parse resolves string-typed page/limit input. Paging is only turned on when
// at least one of the two is provided. defaultLimit overrides DefaultLimit
// for the resource when positive. Only non-numeric input is a caller error:
// a page below 1 lands on the first page and a limit below 1 falls back to
// the default.
func Parse(page, limit string, defaultLimit int) (Params, error) {
	p := Params{Enabled: page != "" || limit != ""}

	p.Page = DefaultPage
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return Params{}, fmt.Errorf("page must be a number, got %q", page)
		}
		p.Page = n
	}

	p.Limit = DefaultLimit
	if defaultLimit > 0 {
		p.Limit = defaultLimit
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return Params{}, fmt.Errorf("limit must be a number, got %q", limit)
		}
		if n >= 1 {
			p.Limit = n
		}
	}

	p.Offset = int64(p.Page-1) * int64(p.Limit)
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	return p, nil
}

// NewMeta computes pagination metadata for a fetched total. limit is floored
// to DefaultLimit so the page count never divides by zero.
func NewMeta(total int64, page, limit int) Meta {
	if limit < 1 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	m := Meta{Total: total, Page: page, Limit: limit}
	if total > 0 {
		m.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return m
}
