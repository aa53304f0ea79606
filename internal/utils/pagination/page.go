package pagination

import "math"

// DefaultPageSize is used when a caller does not configure one.
const DefaultPageSize = 10

// Page is a resolved 1-based offset page.
type Page struct {
	Number int
	Size   int
}

// maxOffset bounds Offset well inside the range of a Postgres OFFSET.
const maxOffset = math.MaxInt32

// NewPage normalises a requested page number and size. Page numbers below 1
// become 1; a non-positive size falls back to DefaultPageSize. Page numbers
// whose offset would pass maxOffset are clamped to the last reachable page.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if last := maxOffset/size + 1; number > last {
		number = last
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of rows to fetch.
func (p Page) Limit() int {
	return p.Size
}

// TotalPages returns how many pages total rows span. Zero rows is zero pages.
func (p Page) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}
