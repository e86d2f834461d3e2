package domain

// Edit-log paging bounds. Page numbers start at 1.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps the row offset of any page well inside an int.
	MaxPage = 1 << 20
)

// PaginationParams selects one page of an event's edit log.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Normalized clamps p into the paging bounds: a page below 1 becomes 1 and an unset
// page size becomes DefaultPageSize.
func (p PaginationParams) Normalized() PaginationParams {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

// Limit is the LIMIT of the page query.
func (p PaginationParams) Limit() int {
	return p.Normalized().PageSize
}

// Offset is the OFFSET of the page query.
func (p PaginationParams) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.PageSize
}
