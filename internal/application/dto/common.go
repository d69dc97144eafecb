package dto

// PageRequest is offset-based pagination input (page starts at 1).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Normalize applies defaults and bounds.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// PageMeta is the pagination envelope every list response carries.
type PageMeta struct {
	Count       int  `json:"count"`
	NumPages    int  `json:"num_pages"`
	CurrentPage int  `json:"current_page"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPageMeta computes the envelope for a total count and the requested page.
// An empty collection still reports one page, mirroring the paginator the
// frontend was built against.
func NewPageMeta(count, page, pageSize int) PageMeta {
	numPages := (count + pageSize - 1) / pageSize
	if numPages < 1 {
		numPages = 1
	}
	return PageMeta{
		Count:       count,
		NumPages:    numPages,
		CurrentPage: page,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
