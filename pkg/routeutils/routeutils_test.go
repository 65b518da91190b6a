package routeutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("/supported-chains/ethereum-mainnet", map[string]string{
		"ethereum-mainnet": "Ethereum",
	})

	assert.Equal(t, []Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Supported Chains", Href: "/supported-chains"},
		{Label: "Ethereum", Href: "/supported-chains/ethereum-mainnet"},
	}, crumbs)
	assert.Equal(t, "Ethereum | Site", Title(crumbs, "Site"))
}

func TestBreadcrumbsHome(t *testing.T) {
	crumbs := Breadcrumbs("/", nil)

	assert.Equal(t, []Crumb{{Label: "Home", Href: "/"}}, crumbs)
	assert.Equal(t, "Site", Title(crumbs, "Site"))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Faq", Humanize("faq"))
	assert.Equal(t, "Terms Of Use", Humanize("terms-of-use"))
	assert.Equal(t, "Supported Wallets", Humanize("supported_wallets"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "use-of-data", Slugify("Use of Data"))
	assert.Equal(t, "1-general-terms", Slugify("  1. General   Terms! "))
	assert.Equal(t, "", Slugify("!!"))
}
