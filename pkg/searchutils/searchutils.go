package searchutils

import (
	"sort"
	"strings"
)

// ALL_CATEGORIES is the dropdown value that disables the category filter.
const ALL_CATEGORIES = "all"

type Item interface {
	SearchTitle() string
	SearchTags() []string
	SearchCategory() string
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func matchesQuery(item Item, query string) bool {
	if query == "" {
		return true
	}
	if containsFold(item.SearchTitle(), query) {
		return true
	}
	for _, tag := range item.SearchTags() {
		if containsFold(tag, query) {
			return true
		}
	}
	return false
}

func matchesCategory(item Item, category string) bool {
	if category == "" || strings.EqualFold(category, ALL_CATEGORIES) {
		return true
	}
	return strings.EqualFold(item.SearchCategory(), category)
}

// Filter keeps the items whose title or one of the tags contains the query,
// ignoring case, and which belong to the selected category.
func Filter[T Item](items []T, query, category string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesCategory(item, category) && matchesQuery(item, query) {
			result = append(result, item)
		}
	}
	return result
}

func Categories[T Item](items []T) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, item := range items {
		category := item.SearchCategory()
		if category == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(category)]; ok {
			continue
		}
		seen[strings.ToLower(category)] = struct{}{}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
