package paginationutils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T, pageCount int) *PaginationView {
	t.Helper()
	u, err := url.Parse("/blog?category=news&page=1")
	require.NoError(t, err)
	return NewPaginationView(*u, NewPaginationViewParams{
		PageCount:          pageCount,
		PageQueryParamName: "page",
	})
}

func pageNumbers(links []PaginationLink) []string {
	var result []string
	for _, link := range links {
		result = append(result, link.PageNumber)
	}
	return result
}

func TestPagesLinks(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		page      int
		want      []string
	}{
		{name: "few pages", pageCount: 3, page: 1, want: []string{"1", "2", "3"}},
		{name: "first page", pageCount: 10, page: 1, want: []string{"1", "2", "...", "10"}},
		{name: "middle page", pageCount: 10, page: 5, want: []string{"1", "...", "4", "5", "6", "...", "10"}},
		{name: "single gap filled", pageCount: 10, page: 3, want: []string{"1", "2", "3", "4", "...", "10"}},
		{name: "last page", pageCount: 10, page: 10, want: []string{"1", "...", "9", "10"}},
		{name: "one page", pageCount: 1, page: 1, want: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := newView(t, tt.pageCount).PagesLinks(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pageNumbers(links))
		})
	}
}

func TestPagesLinksKeepQuery(t *testing.T) {
	links, err := newView(t, 3).PagesLinks(2)
	require.NoError(t, err)

	assert.Equal(t, "/blog?category=news&page=3", links[2].Link)
	assert.True(t, links[1].Current)
	assert.False(t, links[0].Current)
}

func TestPagesLinksInvalidPage(t *testing.T) {
	_, err := newView(t, 3).PagesLinks(4)
	assert.ErrorIs(t, err, ErrInvalidPage)

	links, err := newView(t, 0).PagesLinks(1)
	assert.NoError(t, err)
	assert.Empty(t, links)
}

func TestNextPrev(t *testing.T) {
	view := newView(t, 3)

	require.NotNil(t, view.Next(1))
	assert.Equal(t, "2", view.Next(1).PageNumber)
	assert.Equal(t, "3", view.Next(2).PageNumber)
	assert.Nil(t, view.Next(3))

	assert.Nil(t, view.Prev(1))
	assert.Equal(t, "/blog?category=news&page=2", view.Prev(3).Link)
}
