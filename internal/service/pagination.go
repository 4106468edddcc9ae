package service

import "strconv"

const (
	JobsPageSize        = 6
	RecommendedPageSize = 9
)

// Page describes one page of a listing.
type Page struct {
	Number      int  `json:"page"`
	Size        int  `json:"page_size"`
	Total       int  `json:"total"`
	NumPages    int  `json:"num_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// ParsePage reads a page query value. Anything that is not a positive
// integer means the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// clampPage builds the page for total items. A requested page past the end
// becomes the last page; an empty listing still has one page.
func clampPage(requested, size, total int) Page {
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > pages {
		n = pages
	}
	return Page{
		Number:      n,
		Size:        size,
		Total:       total,
		NumPages:    pages,
		HasNext:     n < pages,
		HasPrevious: n > 1,
	}
}

func (p Page) offset() int { return (p.Number - 1) * p.Size }
