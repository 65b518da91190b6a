package cmsclient

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	FILTER_EQ           = "$eq"
	FILTER_CONTAINS_I   = "$containsi"
	FILTER_NOT_EQ       = "$ne"
	SORT_PUBLISHED_DESC = "publishedAt:desc"
	SORT_PUBLISHED_ASC  = "publishedAt:asc"
	SORT_ORDER_ASC      = "order:asc"
)

// Query builds Strapi REST parameters. The zero value is an empty query.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) init() {
	if q.values == nil {
		q.values = url.Values{}
	}
}

// Filter adds filters[<path>][<operator>]=value. Nested relations use dots:
// "category.slug" becomes filters[category][slug].
func (q *Query) Filter(path, operator, value string) *Query {
	q.init()
	var key strings.Builder
	key.WriteString("filters")
	for _, part := range strings.Split(path, ".") {
		fmt.Fprintf(&key, "[%s]", part)
	}
	fmt.Fprintf(&key, "[%s]", operator)
	q.values.Set(key.String(), value)
	return q
}

// Populate with no fields requests every relation (populate=*).
func (q *Query) Populate(fields ...string) *Query {
	q.init()
	if len(fields) == 0 {
		q.values.Set("populate", "*")
		return q
	}
	q.values.Del("populate")
	for i, field := range fields {
		q.values.Set(fmt.Sprintf("populate[%d]", i), field)
	}
	return q
}

func (q *Query) Sort(sort ...string) *Query {
	q.init()
	q.values.Set("sort", strings.Join(sort, ","))
	return q
}

func (q *Query) Page(page, pageSize int) *Query {
	q.init()
	q.values.Set("pagination[page]", strconv.Itoa(page))
	q.values.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	return q
}

func (q *Query) Values() url.Values {
	q.init()
	out := make(url.Values, len(q.values))
	for key, values := range q.values {
		out[key] = append([]string(nil), values...)
	}
	return out
}

func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	q.init()
	return q.values.Encode()
}
