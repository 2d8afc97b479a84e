package dto

const (
	defaultPage = 1
	defaultSize = 50
	maxSize     = 100
)

// PageRequest carries the {page, size} query parameters.
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// PageResponse is an ordered page plus total count.
type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}
