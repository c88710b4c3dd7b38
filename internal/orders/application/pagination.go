package application

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest carries the page/limit inputs of a listing call
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies the defaults for missing or non-positive inputs
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the number of records to skip
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination metadata returned alongside a page
type PageMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
}

// Meta computes the metadata for a total count. Pages beyond LastPage
// are legal and yield an empty page, not an error.
func (p PageRequest) Meta(total int64) PageMeta {
	lastPage := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PageMeta{
		Total:       total,
		CurrentPage: p.Page,
		LastPage:    lastPage,
	}
}
