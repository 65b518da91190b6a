package model

type FAQItem struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Answer   Document `json:"answer"`
	// Plain answer text, used by search.
	AnswerText string `json:"-"`
}

type FAQSection struct {
	ID    int       `json:"id"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
	Order int       `json:"order"`
	Items []FAQItem `json:"items"`
}

func (i FAQItem) SearchTitle() string { return i.Question }

func (i FAQItem) SearchTags() []string { return []string{i.AnswerText} }

func (i FAQItem) SearchCategory() string { return "" }
