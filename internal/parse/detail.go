package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"udemy-crawl/internal/domain"
)

// ErrNoModuleArgs means the page carried no usable data-module-args blob.
// Without it nothing can be extracted, so the page is dropped.
var ErrNoModuleArgs = errors.New("parse: missing or invalid data-module-args blob")

// The blob nests course/review data under one of two paths depending on
// how the page was rendered. Accessors are tried in order and the first
// non-empty object wins; a third future shape is one more entry here.
var (
	courseAccessors = []func(map[string]any) map[string]any{
		func(d map[string]any) map[string]any { return obj(d, "serverSideProps", "course") },
		func(d map[string]any) map[string]any { return obj(d, "componentProps", "course") },
	}
	reviewsAccessors = []func(map[string]any) map[string]any{
		func(d map[string]any) map[string]any { return obj(d, "serverSideProps", "reviewsRatings") },
		func(d map[string]any) map[string]any { return obj(d, "componentProps", "reviews") },
	}
)

// CourseDetail extracts one canonical course record from a detail page.
// It does no I/O and no retries; the caller owns fetching the markup.
//
// A missing or unparsable module-args blob is fatal for the page
// (ErrNoModuleArgs). Problems in the secondary JSON-LD block are not:
// the affected fields stay empty and everything else is still returned.
func CourseDetail(markup string) (*domain.CourseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse: read markup: %w", err)
	}

	raw, ok := doc.Find("body").First().Attr("data-module-args")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrNoModuleArgs
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoModuleArgs, err)
	}

	course := resolveFirst(data, courseAccessors)
	reviews := resolveFirst(data, reviewsAccessors)

	rec := &domain.CourseRecord{}

	info := &rec.CourseInfo
	info.CourseID = integer(data, "course_id")
	info.Title = str(data, "title")
	if info.Title == nil {
		info.Title = str(course, "title")
	}
	info.Headline = str(course, "headline")
	info.Language = str(course, "localeSimpleEnglishTitle")
	info.Level = str(course, "instructionalLevel", "instructional_level_simple")
	subtitle := strings.Join(strList(course, "captionedLanguages"), ", ")
	info.Subtitle = &subtitle
	info.DurationSeconds = num(course, "contentLengthVideo", "content_length_video")
	info.PublishedDate = str(course, "publishedDate", "published_time")
	info.LastUpdatedDate = str(course, "lastUpdateDate", "last_update_date")

	info.OriginalPrice = metaPrice(doc)
	if ld, err := linkedData(doc); err != nil {
		log.Printf("[parse] warn: linked-data block unreadable, price/sections left empty: %v", err)
	} else if ld != nil {
		info.DiscountPrice = ld.discountPrice
		info.NumSections = ld.numSections
	}

	perf := &rec.Performance
	perf.NumStudents = integer(course, "numStudents", "num_students")
	perf.NumReviews = integer(course, "numReviews", "num_reviews")
	perf.AvgRatingScore = num(course, "rating")
	perf.RatingDistribution = ratingDistribution(reviews)

	rec.InstructionInfo.AllInstructors = instructorList(course, obj(data, "componentProps"))

	return rec, nil
}

func resolveFirst(data map[string]any, accessors []func(map[string]any) map[string]any) map[string]any {
	for _, access := range accessors {
		if m := access(data); len(m) > 0 {
			return m
		}
	}
	return map[string]any{}
}

// ratingDistribution builds the "<star>_star_count" map. Only star values
// present in the source appear; missing stars are not zero-filled.
func ratingDistribution(reviews map[string]any) map[string]int64 {
	out := map[string]int64{}
	for _, it := range anyList(reviews, "ratingDistribution") {
		entry, ok := it.(map[string]any)
		if !ok {
			continue
		}
		star, ok := entry["rating"].(float64)
		if !ok {
			continue
		}
		count, ok := entry["count"].(float64)
		if !ok {
			continue
		}
		out[fmt.Sprintf("%d_star_count", int64(star))] = int64(count)
	}
	return out
}
