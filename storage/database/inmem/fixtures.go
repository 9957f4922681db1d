package inmemdb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-dashboard/core/analytics"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/school"
	"github.com/trezcool/masomo-dashboard/core/user"
)

// Fixture accounts, all in the seeded school.
const (
	FixtureAdminUsername   = "admin"
	FixtureTeacherUsername = "teacher"
	FixturePassword        = "masomo-dev"
)

// Seed fills db with demo data for schoolID. Events are placed around today.
func Seed(db *DB, schoolID string, today time.Time) error {
	if err := seedUsers(db, schoolID); err != nil {
		return errors.Wrap(err, "seeding users")
	}
	seedSchool(db, today)
	seedAnalytics(db)
	seedEvents(db, event.DateOf(today))
	return nil
}

func seedUsers(db *DB, schoolID string) error {
	repo := NewUserRepository(db)
	accounts := []user.User{
		{ID: "usr-admin", Name: "School Admin", Username: FixtureAdminUsername, Email: "admin@masomo.dev", Roles: []string{auth.RoleAdminPrincipal}},
		{ID: "usr-teacher", Name: "Class Teacher", Username: FixtureTeacherUsername, Email: "teacher@masomo.dev", Roles: []string{auth.RoleTeacher}},
	}
	for _, usr := range accounts {
		usr.SchoolID = schoolID
		usr.IsActive = true
		usr.CreatedAt = time.Now().UTC()
		if err := usr.SetPassword(FixturePassword); err != nil {
			return err
		}
		if _, err := repo.CreateUser(usr); err != nil {
			return err
		}
	}
	return nil
}

func seedSchool(db *DB, today time.Time) {
	db.school.mutex.Lock()
	defer db.school.mutex.Unlock()

	db.school.classes = []school.Class{
		{ID: "cls-1", Name: "Grade 1", Grade: 1},
		{ID: "cls-2", Name: "Grade 2", Grade: 2},
		{ID: "cls-3", Name: "Grade 3", Grade: 3},
	}
	db.school.sections = nil
	for _, cls := range db.school.classes {
		for _, name := range []string{"A", "B"} {
			db.school.sections = append(db.school.sections, school.Section{
				ID: fmt.Sprintf("%s-%s", cls.ID, name), ClassID: cls.ID, Name: name, Capacity: 30,
			})
		}
	}

	firstNames := []string{"Amani", "Neema", "Baraka", "Zawadi", "Imani", "Jabari", "Malaika", "Tumaini"}
	lastNames := []string{"Kabila", "Mwamba", "Otieno", "Wanjiru"}
	enrolled := time.Date(today.Year(), time.January, 10, 0, 0, 0, 0, time.UTC)
	db.school.students = nil
	for i := 0; i < 24; i++ {
		sec := db.school.sections[i%len(db.school.sections)]
		db.school.students = append(db.school.students, school.Student{
			ID:             fmt.Sprintf("stu-%03d", i+1),
			AdmissionNo:    fmt.Sprintf("ADM-%03d", i+1),
			FirstName:      firstNames[i%len(firstNames)],
			LastName:       lastNames[i%len(lastNames)],
			ClassID:        sec.ClassID,
			SectionID:      sec.ID,
			IsActive:       true,
			EnrollmentDate: enrolled,
		})
	}

	year := today.Year()
	if today.Month() < time.September {
		year--
	}
	db.school.academicYear = &school.AcademicYear{
		ID:        fmt.Sprintf("ay-%d", year),
		Name:      fmt.Sprintf("%d/%d", year, year+1),
		StartDate: fmt.Sprintf("%d-09-01", year),
		EndDate:   fmt.Sprintf("%d-07-15", year+1),
		IsCurrent: true,
	}
}

func seedAnalytics(db *DB) {
	db.analytics.mutex.Lock()
	defer db.analytics.mutex.Unlock()

	db.analytics.dashboard = analytics.AdminDashboard{
		TotalStudents:     24,
		TotalTeachers:     6,
		TotalClasses:      3,
		AttendanceRate:    94.5,
		FeeCollectionRate: 81.2,
	}
	db.analytics.attendance = analytics.AttendanceStatistics{
		Period: "month", Present: 452, Absent: 21, Late: 5, Rate: 94.5,
		ByClass: []analytics.ClassAttendance{
			{ClassID: "cls-1", ClassName: "Grade 1", Rate: 96.1},
			{ClassID: "cls-2", ClassName: "Grade 2", Rate: 93.8},
			{ClassID: "cls-3", ClassName: "Grade 3", Rate: 93.4},
		},
	}
	db.analytics.financial = analytics.FinancialStatistics{
		Currency: "USD", Billed: 36000, Collected: 29232, Outstanding: 6768, CollectionRate: 81.2,
	}
	db.analytics.trends[analytics.MetricEnrollment] = analytics.TrendSeries{
		Metric: analytics.MetricEnrollment,
		Points: []analytics.TrendPoint{{Period: "2022", Value: 18}, {Period: "2023", Value: 21}, {Period: "2024", Value: 24}},
	}
	db.analytics.trends[analytics.MetricPerformance] = analytics.TrendSeries{
		Metric: analytics.MetricPerformance,
		Points: []analytics.TrendPoint{{Period: "Term 1", Value: 68.5}, {Period: "Term 2", Value: 71.2}, {Period: "Term 3", Value: 73.9}},
	}
}

func seedEvents(db *DB, today event.Date) {
	db.event.mutex.Lock()
	defer db.event.mutex.Unlock()

	admin := &event.Announcer{ID: "usr-admin", Name: "School Admin"}
	events := []event.Event{
		{ID: "evt-1", Title: "Parents meeting", EventType: event.TypeMeeting, StartDate: today.AddDays(2), EndDate: today.AddDays(2), Location: null.StringFrom("Main hall")},
		{ID: "evt-2", Title: "Mid-term exams", EventType: event.TypeExam, StartDate: today.AddDays(7), EndDate: today.AddDays(11), Description: null.StringFrom("All grades")},
		{ID: "evt-3", Title: "Sports day", EventType: event.TypeSports, StartDate: today.AddDays(-3), EndDate: today.AddDays(-3), Location: null.StringFrom("Field")},
		{ID: "evt-4", Title: "Mid-term break", EventType: event.TypeHoliday, StartDate: today.AddDays(14), EndDate: today.AddDays(18)},
	}
	for i := range events {
		events[i].AnnouncedBy = admin
		events[i].IsAllDay = true
		db.event.table[events[i].ID] = &events[i]
	}
}
