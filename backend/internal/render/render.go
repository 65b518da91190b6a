// Package render turns CMS markdown into sanitized HTML and collects its section headings.
package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var headingIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Headings of these levels feed the table of contents.
const TOC_SELECTOR = "h2, h3"

type Rendered struct {
	Document model.Document
	// Text is the visible text without markup.
	Text string
}

type Renderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").Matching(headingIDPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
	}
}

func (r *Renderer) Render(source string) (Rendered, error) {
	if strings.TrimSpace(source) == "" {
		return Rendered{}, nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return Rendered{}, err
	}
	sanitized := r.policy.SanitizeBytes(buf.Bytes())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(sanitized))
	if err != nil {
		return Rendered{}, err
	}

	var headings []model.Heading
	doc.Find(TOC_SELECTOR).Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			return
		}
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		headings = append(headings, model.Heading{
			ID:    id,
			Text:  strings.TrimSpace(s.Text()),
			Level: level,
		})
	})

	return Rendered{
		Document: model.Document{
			HTML:     template.HTML(sanitized),
			Headings: headings,
		},
		Text: strings.Join(strings.Fields(doc.Text()), " "),
	}, nil
}
