package cmsclient

type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

type Envelope[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

type Media struct {
	URL             string `json:"url"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	AlternativeText string `json:"alternativeText,omitempty"`
}

type Taxonomy struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PostRecord struct {
	ID            int        `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Content       string     `json:"content"`
	PublishedAt   string     `json:"publishedAt"`
	Author        string     `json:"author,omitempty"`
	ExternalURL   string     `json:"externalUrl,omitempty"`
	FeaturedImage *Media     `json:"featuredImage,omitempty"`
	Category      *Taxonomy  `json:"category,omitempty"`
	Tags          []Taxonomy `json:"tags,omitempty"`
}

type FAQItemRecord struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQSectionRecord struct {
	ID    int             `json:"id"`
	Slug  string          `json:"slug"`
	Title string          `json:"title"`
	Order int             `json:"order"`
	Items []FAQItemRecord `json:"items"`
}

// DirectoryRecord covers supported chains, wallets, protocols and discover entries.
// Chains name themselves with `name`, the other collections with `title`.
type DirectoryRecord struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description"`
	Content     string     `json:"content,omitempty"`
	Category    string     `json:"category,omitempty"`
	Website     string     `json:"website,omitempty"`
	Tags        []Taxonomy `json:"tags,omitempty"`
	Logo        *Media     `json:"logo,omitempty"`
	Order       int        `json:"order,omitempty"`
}

func (r DirectoryRecord) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

type LegalSectionRecord struct {
	ID      int    `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}
