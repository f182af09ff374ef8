package domain

// DefaultLimit is the page size used when none is specified.
const DefaultLimit = 100

// MaxLimit is the maximum allowed page size.
const MaxLimit = 1000

// PageRequest holds pagination parameters for list operations. Pages are
// zero-indexed.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest validates raw pagination parameters. A zero limit selects
// the default page size.
func NewPageRequest(page, limit int) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, ErrValidation("page must be a non-negative integer")
	}
	if limit < 0 {
		return PageRequest{}, ErrValidation("limit must be a positive integer")
	}
	return PageRequest{Page: page, Limit: limit}, nil
}

// EffectiveLimit returns the page size clamped to [1, MaxLimit].
func (p PageRequest) EffectiveLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	if p.Limit > MaxLimit {
		return MaxLimit
	}
	return p.Limit
}

// Offset returns the row offset of the requested page.
func (p PageRequest) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.EffectiveLimit()
}
