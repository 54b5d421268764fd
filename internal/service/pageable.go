package service

import "math"

// Page size bounds applied to every listing.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pageable is a 1-based page request.
type Pageable struct {
	Page  int
	Limit int
}

// Normalize clamps the request: pages below 1 become 1, a missing limit
// becomes DefaultLimit and anything above maxLimit (MaxLimit when maxLimit <= 0)
// is capped. Page is also capped so that Offset cannot overflow; such a page
// is simply past the end and comes back empty.
func (p Pageable) Normalize(maxLimit int) Pageable {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if lastPage := math.MaxInt/p.Limit + 1; p.Page > lastPage {
		p.Page = lastPage
	}
	return p
}

func (p Pageable) Offset() int {
	return (p.Page - 1) * p.Limit
}
