package paginationutils

import (
	"errors"
	"fmt"
	"net/url"
)

var ErrInvalidPage = errors.New("invalid page.")

type PaginationView struct {
	// Current page cursor padding
	// Example: I have 10 pages. If I'm on 5 page. With cursorPadding = 1.
	// I will see 1 ... 4 Curr 6 ... 10 pages
	cursorPadding      int
	pageCount          int
	pageQueryParamName string
	url                url.URL
}

type PaginationLink struct {
	Link        string `json:"link"`
	PageNumber  string `json:"page_number"`
	Placeholder bool   `json:"placeholder"`
	Current     bool   `json:"current,omitempty"`
}

func (p *PaginationView) TotalPages() int {
	return p.pageCount
}

func (p *PaginationView) validate(page int) error {
	if page > p.pageCount || page < 1 {
		return errors.Join(ErrInvalidPage, fmt.Errorf("Total pages: %d. Page:%d", p.pageCount, page))
	}
	return nil
}

// PagesLinks returns the first and last page, the window around the current page and
// placeholders for the skipped ranges. A gap of exactly one page is filled with that page.
func (p *PaginationView) PagesLinks(page int) ([]PaginationLink, error) {
	if p.pageCount == 0 {
		return nil, nil
	}
	if err := p.validate(page); err != nil {
		return nil, err
	}

	left := max(page-p.cursorPadding, 1)
	right := min(page+p.cursorPadding, p.pageCount)

	var pages []int
	if left > 1 {
		pages = append(pages, 1)
	}
	for i := left; i <= right; i++ {
		pages = append(pages, i)
	}
	if right < p.pageCount {
		pages = append(pages, p.pageCount)
	}

	var result []PaginationLink
	previous := 0
	for _, current := range pages {
		switch gap := current - previous; {
		case gap == 2:
			result = append(result, p.makeLinkFromUrl(previous+1, page))
		case gap > 2:
			result = append(result, p.makeLinkPlaceholder())
		}
		result = append(result, p.makeLinkFromUrl(current, page))
		previous = current
	}
	return result, nil
}

func (p *PaginationView) Next(page int) *PaginationLink {
	if p.validate(page) != nil || page == p.pageCount {
		return nil
	}
	link := p.makeLinkFromUrl(page+1, page)
	return &link
}

func (p *PaginationView) Prev(page int) *PaginationLink {
	if p.validate(page) != nil || page == 1 {
		return nil
	}
	link := p.makeLinkFromUrl(page-1, page)
	return &link
}

func (p *PaginationView) makeLinkFromUrl(page, current int) PaginationLink {
	u := p.url
	queryValues := u.Query()
	queryValues.Set(p.pageQueryParamName, fmt.Sprint(page))
	u.RawQuery = queryValues.Encode()

	return PaginationLink{
		Link:       u.String(),
		PageNumber: fmt.Sprint(page),
		Current:    page == current,
	}
}

func (p *PaginationView) makeLinkPlaceholder() PaginationLink {
	return PaginationLink{
		Link:        "...",
		PageNumber:  "...",
		Placeholder: true,
	}
}

type NewPaginationViewParams struct {
	PageCount          int
	PageQueryParamName string
}

func NewPaginationView(url url.URL, params NewPaginationViewParams) *PaginationView {
	return &PaginationView{
		url:                url,
		cursorPadding:      1,
		pageCount:          params.PageCount,
		pageQueryParamName: params.PageQueryParamName,
	}
}
