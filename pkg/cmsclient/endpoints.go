package cmsclient

const (
	ENDPOINT_POSTS               = "/api/posts"
	ENDPOINT_NEWSROOMS           = "/api/newsrooms"
	ENDPOINT_FAQ                 = "/api/faq"
	ENDPOINT_SUPPORTED_CHAINS    = "/api/supported-chains"
	ENDPOINT_SUPPORTED_WALLETS   = "/api/supported-wallets"
	ENDPOINT_SUPPORTED_PROTOCOLS = "/api/supported-protocols"
	ENDPOINT_DISCOVERS           = "/api/discovers"
	ENDPOINT_TERMS_SECTIONS      = "/api/terms-sections"
	ENDPOINT_PRIVACY_SECTIONS    = "/api/privacy-sections"
)

// Largest page Strapi serves with default settings.
const MAX_PAGE_SIZE = 100
