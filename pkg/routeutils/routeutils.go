package routeutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const HOME_LABEL = "Home"

type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Humanize turns a route segment into a label: "supported-chains" -> "Supported Chains".
func Humanize(segment string) string {
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(strings.Fields(segment), " "))
}

// Slugify builds an anchor id from free text: "Use of Data" -> "use-of-data".
func Slugify(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Breadcrumbs splits the path into crumbs starting at Home. Labels override the humanized
// segment, usually with the title of the record addressed by a slug.
func Breadcrumbs(path string, labels map[string]string) []Crumb {
	crumbs := []Crumb{{Label: HOME_LABEL, Href: "/"}}

	href := ""
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		href += "/" + segment
		label, ok := labels[segment]
		if !ok || label == "" {
			label = Humanize(segment)
		}
		crumbs = append(crumbs, Crumb{Label: label, Href: href})
	}
	return crumbs
}

func Title(crumbs []Crumb, siteName string) string {
	if len(crumbs) <= 1 {
		return siteName
	}
	return crumbs[len(crumbs)-1].Label + " | " + siteName
}
