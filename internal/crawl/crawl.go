package crawl

import (
	"context"
	"fmt"
	"sort"
	"time"

	"udemy-crawl/internal/config"
	"udemy-crawl/internal/domain"
	"udemy-crawl/internal/fetch"
	"udemy-crawl/internal/links"
	"udemy-crawl/internal/pacing"
	"udemy-crawl/internal/parse"
)

// Crawler drives the two sequential phases: listing discovery and detail
// extraction. One page at a time, no parallel fetching; fault isolation
// is per page/URL, a single failure never aborts the run.
type Crawler struct {
	Fetcher fetch.Fetcher
	Pacer   pacing.Pacer
	Set     config.Settings

	// Dump, when set, receives the markup of listing pages that yielded
	// no links, for later diagnosis of premature termination.
	Dump func(label, markup string)
}

// Listing walks listing pages [startPage, endPage] of baseURL in order
// and returns the union of discovered course links, deduplicated and
// sorted. A page that yields zero links (including fetch failures) is
// taken to mean pagination has run out and stops the walk; later pages
// are never fetched in that run.
func (c *Crawler) Listing(ctx context.Context, baseURL string, startPage, endPage int) []string {
	seen := map[string]struct{}{}

	for page := startPage; page <= endPage; page++ {
		pageURL := fmt.Sprintf("%s?p=%d", baseURL, page)
		fmt.Printf("[listing] page %d/%d: %s\n", page, endPage, pageURL)

		var found []string
		markup, err := c.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			fmt.Printf("[listing] WARN: cannot open page %d: %v\n", page, err)
		} else {
			found = links.ExtractCourseLinks(markup)
		}

		if len(found) == 0 {
			if err == nil && c.Dump != nil {
				c.Dump(fmt.Sprintf("listing_p%d", page), markup)
			}
			fmt.Printf("[listing] page %d has no course links, assuming end of category\n", page)
			break
		}

		fmt.Printf("[listing] found %d course links\n", len(found))
		for _, l := range found {
			seen[l] = struct{}{}
		}

		if page < endPage {
			if err := c.Pacer.Pause(ctx, c.Set.PagePause); err != nil {
				break
			}
		}
	}

	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Details visits every URL in order, extracts a course record from each
// and stamps crawl metadata. The scrape timestamp is captured once so all
// records of a run share it. Fetch or parse failures skip the single URL.
func (c *Crawler) Details(ctx context.Context, category string, urls []string) []domain.CourseRecord {
	now := time.Now().Format(time.RFC3339)

	var out []domain.CourseRecord
	for i, u := range urls {
		fmt.Printf("[course] [%d/%d] (%s) %s\n", i+1, len(urls), category, u)

		markup, err := c.Fetcher.Fetch(ctx, u)
		if err != nil {
			fmt.Printf("[course] WARN: cannot open course page, skipping: %v\n", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		// simulate reading the page before touching its content
		if err := c.Pacer.Pause(ctx, c.Set.ReadPause); err != nil {
			break
		}

		rec, err := parse.CourseDetail(markup)
		if err != nil {
			fmt.Printf("[course] WARN: %v, skipping\n", err)
			continue
		}

		rec.URL = u
		rec.Category = category
		rec.ScrapedDatetime = now
		out = append(out, *rec)
	}
	return out
}
