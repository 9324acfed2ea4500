package models

// Page size bounds applied by Pagination.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns the first page at the default size.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: DefaultPageSize}
}

// Size returns the effective page size: DefaultPageSize when unset,
// at most MaxPageSize.
func (p Pagination) Size() int {
	switch {
	case p.PageSize < 1:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return p.PageSize
	}
}

// Offset returns the SQL offset of the page.
func (p Pagination) Offset() int {
	return (max(p.Page, 1) - 1) * p.Size()
}

// Limit returns the SQL limit of the page.
func (p Pagination) Limit() int {
	return p.Size()
}

// TotalPages returns the number of pages needed for total rows, at least 1.
func (p Pagination) TotalPages(total int) int {
	size := p.Size()
	return max((total+size-1)/size, 1)
}
