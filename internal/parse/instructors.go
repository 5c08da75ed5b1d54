package parse

import "udemy-crawl/internal/domain"

// The two upstream instructor shapes use different keys for the same
// logical fields. total_num_students exists only in the server-side
// shape, so its presence selects the mapping table per record.
type instructorKeys struct {
	students string
	rating   string
	courses  string
}

var (
	serverSideKeys = instructorKeys{
		students: "total_num_students",
		rating:   "avg_rating_recent",
		courses:  "total_num_taught_courses",
	}
	componentKeys = instructorKeys{
		students: "num_students",
		rating:   "rating",
		courses:  "num_published_courses",
	}
)

// instructorList resolves the instructor entries from the course object's
// nested instructors_info list, falling back to the component-level list.
func instructorList(course, componentProps map[string]any) []domain.Instructor {
	items := anyList(obj(course, "instructors"), "instructors_info")
	if len(items) == 0 {
		items = anyList(componentProps, "instructors")
	}

	out := make([]domain.Instructor, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, mapInstructor(m))
	}
	return out
}

func mapInstructor(in map[string]any) domain.Instructor {
	keys := componentKeys
	if _, ok := in[serverSideKeys.students]; ok {
		keys = serverSideKeys
	}
	return domain.Instructor{
		InstructorID:   integer(in, "id"),
		Name:           str(in, "display_name"),
		JobTitle:       str(in, "job_title"),
		NumStudents:    integer(in, keys.students),
		AvgRatingScore: num(in, keys.rating),
		NumOfCourses:   integer(in, keys.courses),
	}
}
