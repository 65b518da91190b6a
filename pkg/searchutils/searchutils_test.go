package searchutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type entry struct {
	title    string
	tags     []string
	category string
}

func (e entry) SearchTitle() string    { return e.title }
func (e entry) SearchTags() []string   { return e.tags }
func (e entry) SearchCategory() string { return e.category }

var entries = []entry{
	{title: "Ethereum", tags: []string{"EVM", "L1"}, category: "Layer 1"},
	{title: "Arbitrum One", tags: []string{"evm", "rollup"}, category: "Layer 2"},
	{title: "Solana", tags: []string{"SVM"}, category: "Layer 1"},
	{title: "MetaMask", category: "Wallet"},
}

func titles(items []entry) []string {
	result := []string{}
	for _, item := range items {
		result = append(result, item.title)
	}
	return result
}

func TestFilterByTitleOrTag(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps everything", query: "", want: []string{"Ethereum", "Arbitrum One", "Solana", "MetaMask"}},
		{name: "title substring ignores case", query: "ETHER", want: []string{"Ethereum"}},
		{name: "tag substring ignores case", query: "evm", want: []string{"Ethereum", "Arbitrum One"}},
		{name: "surrounding spaces are trimmed", query: "  sol ", want: []string{"Solana"}},
		{name: "no match", query: "cosmos", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Filter(entries, tt.query, "")))
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	assert.Equal(t, []string{"Ethereum", "Solana"}, titles(Filter(entries, "", "layer 1")))
	assert.Equal(t, []string{"Ethereum"}, titles(Filter(entries, "evm", "Layer 1")))
	assert.Len(t, Filter(entries, "", ALL_CATEGORIES), len(entries))
	assert.Empty(t, Filter(entries, "", "Bridge"))
}

func TestFilterEmptyItems(t *testing.T) {
	assert.Empty(t, Filter([]entry(nil), "eth", ""))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Layer 1", "Layer 2", "Wallet"}, Categories(entries))
}
