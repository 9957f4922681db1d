package school

import (
	"errors"
	"strings"
)

// DefaultPageSize applies when StudentFilter.PageSize is not set.
const DefaultPageSize = 20

var ErrNoCurrentAcademicYear = errors.New("no current academic year")

type Repository interface {
	// FilterStudents returns every student matching filter, ignoring pagination.
	FilterStudents(filter StudentFilter) ([]Student, error)
	QueryClasses() ([]Class, error)
	QuerySections(classID string) ([]Section, error)
	CurrentAcademicYear() (AcademicYear, error)
}

// Matches reports whether s satisfies every set field of the filter.
// Search is a case-insensitive match on the name or admission number.
func (f StudentFilter) Matches(s Student) bool {
	if f.ClassID != "" && s.ClassID != f.ClassID {
		return false
	}
	if f.SectionID != "" && s.SectionID != f.SectionID {
		return false
	}
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(s.FullName()), search) ||
			strings.Contains(strings.ToLower(s.AdmissionNo), search)
	}
	return true
}

// Paginate returns the requested page of students. Total is the number of students before pagination.
func (f StudentFilter) Paginate(students []Student) StudentList {
	page, size := f.Page, f.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	list := StudentList{Students: []Student{}, Total: len(students)}
	start := (page - 1) * size
	if start >= len(students) {
		return list
	}
	end := start + size
	if end > len(students) {
		end = len(students)
	}
	list.Students = students[start:end]
	return list
}
