package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/romashorodok/content-site/backend/internal/service"
)

const BASE_URL = "/api/v1"

const (
	SORTING_QUERY_PARAM_NAME   = "sort"
	CATEGORY_QUERY_PARAM_NAME  = "category"
	TAG_QUERY_PARAM_NAME       = "tag"
	SEARCH_QUERY_PARAM_NAME    = "q"
	PAGE_QUERY_PARAM_NAME      = "page"
	PAGE_SIZE_QUERY_PARAM_NAME = "page_size"
)

var ErrUnsupportedQueryParam = errors.New("unsupported query param")

func getSortingQuery(r *http.Request, defaultVal service.PostSorting) (service.PostSorting, error) {
	sortingParam := r.URL.Query().Get(SORTING_QUERY_PARAM_NAME)
	switch service.PostSorting(sortingParam) {
	case service.POST_SORTING_NEWEST:
		return service.POST_SORTING_NEWEST, nil
	case service.POST_SORTING_OLDEST:
		return service.POST_SORTING_OLDEST, nil
	case "":
		return defaultVal, nil
	default:
		return "", errors.Join(fmt.Errorf("unsupported `%s` query value %s", SORTING_QUERY_PARAM_NAME, sortingParam), ErrUnsupportedQueryParam)
	}
}

func getTextQuery(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func getIntQuery(r *http.Request, name string, defaultVal int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultVal, nil
	}
	number, err := strconv.Atoi(value)
	if err != nil || number < 1 {
		return -1, errors.Join(fmt.Errorf("unsupported `%s` value %s. Support only positive numbers", name, value), ErrUnsupportedQueryParam)
	}
	return number, nil
}

func GetPageQuery(r *http.Request) (int, error) {
	return getIntQuery(r, PAGE_QUERY_PARAM_NAME, service.DEFAULT_PAGE)
}

func GetPageSizeQuery(r *http.Request, defaultPageSize int) (int, error) {
	return getIntQuery(r, PAGE_SIZE_QUERY_PARAM_NAME, defaultPageSize)
}

// GetSortingQuery is shared with the page handlers.
func GetSortingQuery(r *http.Request) (service.PostSorting, error) {
	return getSortingQuery(r, service.POST_SORTING_NEWEST)
}
