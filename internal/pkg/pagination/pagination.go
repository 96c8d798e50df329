package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 12
	MaxLimit     = 50
)

// Pages is the envelope returned with every list response.
type Pages struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Request holds sanitized page/limit values parsed from query parameters.
type Request struct {
	Page  int
	Limit int
}

// FromQuery parses page and limit query values, clamping them to sane
// bounds. Garbage input falls back to the defaults rather than erroring.
func FromQuery(pageStr, limitStr string) Request {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{Page: page, Limit: limit}
}

// Skip returns the offset for database queries: (page-1) * limit.
func (r Request) Skip() int {
	return (r.Page - 1) * r.Limit
}

// Envelope builds the response metadata for a total match count.
// hasNext is true iff page*limit < total; total pages = ceil(total/limit).
func (r Request) Envelope(total int64) Pages {
	pages := int(math.Ceil(float64(total) / float64(r.Limit)))

	return Pages{
		Current: r.Page,
		Total:   pages,
		HasNext: int64(r.Page)*int64(r.Limit) < total,
		HasPrev: r.Page > 1,
	}
}
