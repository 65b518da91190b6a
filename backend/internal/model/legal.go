package model

type LegalDocumentKind string

const (
	LEGAL_TERMS   LegalDocumentKind = "terms"
	LEGAL_PRIVACY LegalDocumentKind = "privacy"
)

func (k LegalDocumentKind) Valid() bool {
	return k == LEGAL_TERMS || k == LEGAL_PRIVACY
}

type LegalSection struct {
	ID    int      `json:"id"`
	Slug  string   `json:"slug"`
	Title string   `json:"title"`
	Order int      `json:"order"`
	Body  Document `json:"body"`
}

type LegalDocument struct {
	Kind     LegalDocumentKind `json:"kind"`
	Sections []LegalSection    `json:"sections"`
	// Table of contents, one entry per section.
	Contents []Heading `json:"contents"`
}
