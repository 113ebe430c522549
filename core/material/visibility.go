package material

import "github.com/tuitionlk/portal/core"

// VisibilityFilter carries a student's entitlements: the course names they
// are permitted to take and the lecturers assigned to them.
type VisibilityFilter struct {
	PermittedCourses  []string `query:"course"`
	AssignedLecturers []string `query:"lecturer"`
}

// Clean trims course names and lecturer ids and drops empty entries.
func (f *VisibilityFilter) Clean() {
	f.PermittedCourses = cleanSet(f.PermittedCourses)
	f.AssignedLecturers = cleanSet(f.AssignedLecturers)
}

func cleanSet(vals []string) []string {
	cleaned := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = core.CleanString(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// Match reports whether a material is visible under this filter.
//
// Two independent rules are AND-ed:
//   - lecturer rule: the material is public (no lecturer) or its lecturer is
//     in the assigned set. An empty assigned set admits public materials only.
//   - course rule: the material is untagged or its course tag equals one of
//     the permitted courses, compared trimmed and case-insensitively. An
//     empty permitted set admits untagged materials only.
//
// A student with no entitlements at all therefore sees exactly the fully
// public materials: no lecturer and no course tag.
func (f VisibilityFilter) Match(m Material) bool {
	return f.matchLecturer(m) && f.matchCourse(m)
}

func (f VisibilityFilter) matchLecturer(m Material) bool {
	if m.LecturerID == "" {
		return true
	}
	for _, id := range f.AssignedLecturers {
		if m.LecturerID == id {
			return true
		}
	}
	return false
}

func (f VisibilityFilter) matchCourse(m Material) bool {
	tag := core.CleanString(m.CourseName, true /* lower */)
	if tag == "" {
		return true
	}
	for _, course := range f.PermittedCourses {
		if tag == core.CleanString(course, true /* lower */) {
			return true
		}
	}
	return false
}
