package pagination

// PageRequest describes a page/size request from the API. Page is 1-based.
type PageRequest struct {
	Page int `form:"page" json:"page"`
	Size int `form:"size" json:"size"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Normalize clamps the request to sane bounds and fills defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// Limit returns the row limit for the normalized request.
func (p PageRequest) Limit() int {
	return p.Normalize().Size
}

// Page is one page of results plus the total number of matching rows.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

// NewPage builds a Page from a result slice, the total count and the request.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	n := req.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: total, Page: n.Page, Size: n.Size}
}
