package crawl

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"udemy-crawl/internal/config"
	"udemy-crawl/internal/fetch"
	"udemy-crawl/internal/pacing"
)

func testSettings() config.Settings {
	s := config.DefaultSettings()
	s.FetchRetries = 0
	return s
}

// fakeFetcher serves canned markup per URL and records the order of calls.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	markup, ok := f.pages[url]
	if !ok {
		return "", errors.New("no such page")
	}
	return markup, nil
}

func listingMarkup(slugs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, s := range slugs {
		fmt.Fprintf(&b, `<a href="/course/%s/">%s</a>`, s, s)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestListingStopsAtFirstEmptyPage(t *testing.T) {
	base := "https://www.udemy.com/courses/it-and-software/"
	f := &fakeFetcher{pages: map[string]string{
		base + "?p=1": listingMarkup("a", "b"),
		base + "?p=2": listingMarkup("c"),
		base + "?p=3": listingMarkup(), // pagination ran out here
		base + "?p=4": listingMarkup("never-reached"),
		base + "?p=5": listingMarkup("never-reached"),
		base + "?p=6": listingMarkup("never-reached"),
	}}

	c := &Crawler{Fetcher: f, Pacer: pacing.Nop{}, Set: testSettings()}
	got := c.Listing(context.Background(), base, 1, 6)

	if len(f.calls) != 3 {
		t.Errorf("fetched %d pages (%v), want exactly 3", len(f.calls), f.calls)
	}
	want := []string{
		"https://www.udemy.com/course/a/",
		"https://www.udemy.com/course/b/",
		"https://www.udemy.com/course/c/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestListingDeduplicatesAcrossPages(t *testing.T) {
	base := "https://www.udemy.com/courses/x/"
	f := &fakeFetcher{pages: map[string]string{
		base + "?p=1": listingMarkup("b", "a", "c"),
		base + "?p=2": listingMarkup(), // empty page, termination
	}}

	c := &Crawler{Fetcher: f, Pacer: pacing.Nop{}, Set: testSettings()}
	got := c.Listing(context.Background(), base, 1, 5)

	if len(f.calls) != 2 {
		t.Errorf("fetched %d pages, want 2 (terminate on the empty page)", len(f.calls))
	}
	if len(got) != 3 {
		t.Errorf("got %d links, want 3 unique", len(got))
	}
	if !sortedStrings(got) {
		t.Errorf("links not sorted: %v", got)
	}
}

func TestListingFetchFailureTerminates(t *testing.T) {
	base := "https://www.udemy.com/courses/x/"
	f := &fakeFetcher{pages: map[string]string{
		base + "?p=1": listingMarkup("a"),
		// p=2 missing: fetch error counts as zero links
		base + "?p=3": listingMarkup("b"),
	}}

	c := &Crawler{Fetcher: f, Pacer: pacing.Nop{}, Set: testSettings()}
	got := c.Listing(context.Background(), base, 1, 3)

	if len(f.calls) != 2 {
		t.Errorf("fetched %d pages, want 2", len(f.calls))
	}
	if len(got) != 1 {
		t.Errorf("links = %v, want just page 1's link", got)
	}
}

func TestListingDumpsEmptyPages(t *testing.T) {
	base := "https://www.udemy.com/courses/x/"
	empty := "<html><body><p>nothing here</p></body></html>"
	f := &fakeFetcher{pages: map[string]string{base + "?p=1": empty}}

	var dumped []string
	c := &Crawler{
		Fetcher: f,
		Pacer:   pacing.Nop{},
		Set:     testSettings(),
		Dump:    func(label, markup string) { dumped = append(dumped, label) },
	}
	c.Listing(context.Background(), base, 1, 3)

	if !reflect.DeepEqual(dumped, []string{"listing_p1"}) {
		t.Errorf("dumped = %v, want [listing_p1]", dumped)
	}
}

const goodDetail = `<html><body data-module-args='{"course_id": 1, "title": "T",
	"serverSideProps": {"course": {"headline": "h"}}}'></body></html>`

func TestDetailsSkipsFailuresAndStampsMetadata(t *testing.T) {
	urls := []string{
		"https://www.udemy.com/course/bad-parse/",
		"https://www.udemy.com/course/fetch-error/",
		"https://www.udemy.com/course/good/",
	}
	f := &fakeFetcher{pages: map[string]string{
		urls[0]: "<html><body>no blob</body></html>",
		urls[2]: goodDetail,
	}}

	c := &Crawler{Fetcher: f, Pacer: pacing.Nop{}, Set: testSettings()}
	got := c.Details(context.Background(), "Software Testing", urls)

	if len(got) != 1 {
		t.Fatalf("got %d records, want 1 (two skips)", len(got))
	}
	rec := got[0]
	if rec.URL != urls[2] {
		t.Errorf("URL = %q, want %q", rec.URL, urls[2])
	}
	if rec.Category != "Software Testing" {
		t.Errorf("Category = %q", rec.Category)
	}
	if rec.ScrapedDatetime == "" {
		t.Error("ScrapedDatetime not stamped")
	}
	if len(f.calls) != 3 {
		t.Errorf("fetched %d urls, want all 3 attempted", len(f.calls))
	}
}

func TestDetailsSharedTimestamp(t *testing.T) {
	urls := []string{
		"https://www.udemy.com/course/one/",
		"https://www.udemy.com/course/two/",
	}
	f := &fakeFetcher{pages: map[string]string{urls[0]: goodDetail, urls[1]: goodDetail}}

	c := &Crawler{Fetcher: f, Pacer: pacing.Nop{}, Set: testSettings()}
	got := c.Details(context.Background(), "X", urls)

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ScrapedDatetime != got[1].ScrapedDatetime {
		t.Errorf("timestamps differ within one run: %q vs %q",
			got[0].ScrapedDatetime, got[1].ScrapedDatetime)
	}
}

// End to end through the retry wrapper: a flaky page costs retries, not
// the run.
func TestDetailsWithRetryingFetcher(t *testing.T) {
	url := "https://www.udemy.com/course/flaky/"
	attempts := 0
	flaky := fetch.Func(func(_ context.Context, u string) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("timeout")
		}
		return goodDetail, nil
	})

	set := testSettings()
	set.FetchRetries = 2
	c := &Crawler{Fetcher: fetch.WithRetry(flaky, set, pacing.Nop{}), Pacer: pacing.Nop{}, Set: set}
	got := c.Details(context.Background(), "X", []string{url})

	if len(got) != 1 {
		t.Fatalf("got %d records, want 1 after retries", len(got))
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
