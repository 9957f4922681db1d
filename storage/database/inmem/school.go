package inmemdb

import (
	"github.com/trezcool/masomo-dashboard/core/school"
)

type schoolRepository struct {
	db *schoolTables
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db.school}
}

func (repo *schoolRepository) FilterStudents(filter school.StudentFilter) ([]school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		if filter.Matches(s) {
			students = append(students, s)
		}
	}
	return students, nil
}

func (repo *schoolRepository) QueryClasses() ([]school.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]school.Class{}, repo.db.classes...), nil
}

func (repo *schoolRepository) QuerySections(classID string) ([]school.Section, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sections := make([]school.Section, 0, len(repo.db.sections))
	for _, s := range repo.db.sections {
		if classID == "" || s.ClassID == classID {
			sections = append(sections, s)
		}
	}
	return sections, nil
}

func (repo *schoolRepository) CurrentAcademicYear() (school.AcademicYear, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.db.academicYear == nil {
		return school.AcademicYear{}, school.ErrNoCurrentAcademicYear
	}
	return *repo.db.academicYear, nil
}
