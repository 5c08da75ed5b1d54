package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"udemy-crawl/internal/domain"
)

// row is the flattened Parquet layout: nested scalar fields become dotted
// columns, list/dict values are stored as JSON strings so the file stays
// a plain table for downstream analytics.
type row struct {
	CourseID        *int64   `parquet:"course_in4.course_id,optional"`
	Title           *string  `parquet:"course_in4.title,optional"`
	Headline        *string  `parquet:"course_in4.headline,optional"`
	Language        *string  `parquet:"course_in4.language,optional"`
	Level           *string  `parquet:"course_in4.level,optional"`
	Subtitle        *string  `parquet:"course_in4.subtitle,optional"`
	DurationSeconds *float64 `parquet:"course_in4.course_duration_seconds,optional"`
	NumSections     *int64   `parquet:"course_in4.num_sections,optional"`
	PublishedDate   *string  `parquet:"course_in4.publishes_date,optional"`
	LastUpdatedDate *string  `parquet:"course_in4.lasted_updated_date,optional"`
	OriginalPrice   *float64 `parquet:"course_in4.original_price,optional"`
	DiscountPrice   *float64 `parquet:"course_in4.discount_price,optional"`

	NumStudents        *int64   `parquet:"course_performance.num_students,optional"`
	NumReviews         *int64   `parquet:"course_performance.num_reviews,optional"`
	AvgRatingScore     *float64 `parquet:"course_performance.avg_rating_score,optional"`
	RatingDistribution string   `parquet:"course_performance.rating_distribution"`

	AllInstructors string `parquet:"instruction_in4.all_instructors"`

	URL             string `parquet:"_url"`
	Category        string `parquet:"_category"`
	ScrapedDatetime string `parquet:"_scraped_datetime"`
}

// WriteParquet writes the records to path, gzip-compressed.
func WriteParquet(path string, records []domain.CourseRecord) error {
	rows := make([]row, 0, len(records))
	for _, r := range records {
		rows = append(rows, toRow(r))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	w := parquet.NewGenericWriter[row](f, parquet.Compression(&parquet.Gzip))
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("export: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}

	fmt.Printf("[save] wrote %d rows to %s\n", len(rows), path)
	return nil
}

func toRow(r domain.CourseRecord) row {
	dist, _ := json.Marshal(r.Performance.RatingDistribution)
	inst, _ := json.Marshal(r.InstructionInfo.AllInstructors)

	return row{
		CourseID:        r.CourseInfo.CourseID,
		Title:           r.CourseInfo.Title,
		Headline:        r.CourseInfo.Headline,
		Language:        r.CourseInfo.Language,
		Level:           r.CourseInfo.Level,
		Subtitle:        r.CourseInfo.Subtitle,
		DurationSeconds: r.CourseInfo.DurationSeconds,
		NumSections:     r.CourseInfo.NumSections,
		PublishedDate:   r.CourseInfo.PublishedDate,
		LastUpdatedDate: r.CourseInfo.LastUpdatedDate,
		OriginalPrice:   r.CourseInfo.OriginalPrice,
		DiscountPrice:   r.CourseInfo.DiscountPrice,

		NumStudents:        r.Performance.NumStudents,
		NumReviews:         r.Performance.NumReviews,
		AvgRatingScore:     r.Performance.AvgRatingScore,
		RatingDistribution: string(dist),

		AllInstructors: string(inst),

		URL:             r.URL,
		Category:        r.Category,
		ScrapedDatetime: r.ScrapedDatetime,
	}
}

// FileName builds the output name, e.g.
// Software_Testing_p1_p6_2026-09-01_10-30-00.parquet
func FileName(category string, startPage, endPage int, ts time.Time) string {
	return fmt.Sprintf("%s_p%d_p%d_%s.parquet",
		Underscore(category), startPage, endPage, ts.Format("2006-01-02_15-04-05"))
}

// Underscore makes a category name path/file safe.
func Underscore(category string) string {
	return strings.ReplaceAll(strings.TrimSpace(category), " ", "_")
}
