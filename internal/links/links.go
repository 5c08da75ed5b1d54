package links

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	siteRoot   = "https://www.udemy.com"
	coursePath = "/course/"

	// Prefix every returned link must carry.
	Prefix = siteRoot + coursePath
)

// ExtractCourseLinks returns every normalized course URL found in the
// listing markup, deduplicated and sorted so runs are reproducible.
// Malformed markup is never an error; it just yields no links.
func ExtractCourseLinks(markup string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	set := map[string]struct{}{}
	doc.Find(`a[href*="/course/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if link := Normalize(href); link != "" {
			set[link] = struct{}{}
		}
	})

	out := make([]string, 0, len(set))
	for link := range set {
		out = append(out, link)
	}
	sort.Strings(out)
	return out
}

// Normalize turns a raw href into the canonical course link form:
// absolute, no query string, exactly one trailing slash. It returns ""
// for anything that does not resolve under the course path.
// Normalize is idempotent.
func Normalize(href string) string {
	if !strings.Contains(href, coursePath) {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		href = siteRoot + href
	}
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/") + "/"
	if !strings.HasPrefix(href, Prefix) {
		return ""
	}
	return href
}
