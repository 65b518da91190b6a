package model

type DirectoryKind string

const (
	DIRECTORY_CHAINS    DirectoryKind = "chains"
	DIRECTORY_WALLETS   DirectoryKind = "wallets"
	DIRECTORY_PROTOCOLS DirectoryKind = "protocols"
	DIRECTORY_DISCOVER  DirectoryKind = "discover"
)

var DirectoryKinds = []DirectoryKind{
	DIRECTORY_CHAINS,
	DIRECTORY_WALLETS,
	DIRECTORY_PROTOCOLS,
	DIRECTORY_DISCOVER,
}

func (k DirectoryKind) Valid() bool {
	for _, kind := range DirectoryKinds {
		if kind == k {
			return true
		}
	}
	return false
}

type DirectoryEntry struct {
	ID          int           `json:"id"`
	Kind        DirectoryKind `json:"kind"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Body        Document      `json:"body"`
	Category    string        `json:"category,omitempty"`
	Website     string        `json:"website,omitempty"`
	Tags        []Tag         `json:"tags,omitempty"`
	Logo        *Image        `json:"logo,omitempty"`
	Order       int           `json:"order"`
}

func (e DirectoryEntry) SearchTitle() string { return e.Title }

func (e DirectoryEntry) SearchTags() []string {
	tags := make([]string, 0, len(e.Tags))
	for _, tag := range e.Tags {
		tags = append(tags, tag.Name)
	}
	return tags
}

func (e DirectoryEntry) SearchCategory() string { return e.Category }

var NilDirectoryEntry = DirectoryEntry{}
