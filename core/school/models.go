package school

import "time"

type Student struct {
	ID             string    `json:"id"`
	AdmissionNo    string    `json:"admission_no"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Gender         string    `json:"gender,omitempty"`
	ClassID        string    `json:"class_id,omitempty"`
	SectionID      string    `json:"section_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// StudentList is the body of GET /api/students.
type StudentList struct {
	Students []Student `json:"students"`
	Total    int       `json:"total"`
}

type Class struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade int    `json:"grade"`
}

type Section struct {
	ID       string `json:"id"`
	ClassID  string `json:"class_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type AcademicYear struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsCurrent bool   `json:"is_current"`
}

// StudentFilter narrows GET /api/students.
type StudentFilter struct {
	ClassID   string `query:"class_id"`
	SectionID string `query:"section_id"`
	Search    string `query:"search"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}
