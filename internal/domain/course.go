package domain

// CourseRecord is the canonical representation of one scraped course.
// Both page shapes (server-side props and component props) map into this
// model, and all destinations (Parquet, blob storage) map from it.
//
// Every field except URL and Category is optional: the embedded page data
// is not guaranteed to populate anything, so extraction never fails just
// because a field is absent.
type CourseRecord struct {
	CourseInfo      CourseInfo      `json:"course_in4"`
	Performance     Performance     `json:"course_performance"`
	InstructionInfo InstructionInfo `json:"instruction_in4"`

	// crawl metadata, stamped by the orchestrator
	URL             string `json:"_url"`
	Category        string `json:"_category"`
	ScrapedDatetime string `json:"_scraped_datetime"`
}

type CourseInfo struct {
	CourseID *int64  `json:"course_id"`
	Title    *string `json:"title"`
	Headline *string `json:"headline"`
	Language *string `json:"language"`
	Level    *string `json:"level"`

	// Subtitle is the joined list of captioned languages ("English, Spanish").
	Subtitle *string `json:"subtitle"`

	DurationSeconds *float64 `json:"course_duration_seconds"`
	NumSections     *int64   `json:"num_sections"`

	// ISO strings exactly as the page gives them. No reformatting.
	PublishedDate   *string `json:"publishes_date"`
	LastUpdatedDate *string `json:"lasted_updated_date"`

	OriginalPrice *float64 `json:"original_price"`
	DiscountPrice *float64 `json:"discount_price"`
}

type Performance struct {
	NumStudents    *int64   `json:"num_students"`
	NumReviews     *int64   `json:"num_reviews"`
	AvgRatingScore *float64 `json:"avg_rating_score"`

	// RatingDistribution maps "<star>_star_count" to the review count for
	// that star value. Keys exist only for star values present in the
	// source; absent stars are NOT zero-filled.
	RatingDistribution map[string]int64 `json:"rating_distribution"`
}

type InstructionInfo struct {
	AllInstructors []Instructor `json:"all_instructors"`
}

// Instructor is the canonical instructor shape. The upstream blob encodes
// instructors in one of two mutually exclusive shapes; the parser maps both
// into this one.
type Instructor struct {
	InstructorID   *int64   `json:"instructor_id"`
	Name           *string  `json:"name"`
	JobTitle       *string  `json:"job_title"`
	NumStudents    *int64   `json:"num_students"`
	AvgRatingScore *float64 `json:"avg_rating_score"`
	NumOfCourses   *int64   `json:"num_of_courses"`
}
