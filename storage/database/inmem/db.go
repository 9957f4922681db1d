package inmemdb

import (
	"sync"

	"github.com/trezcool/masomo-dashboard/core/analytics"
	"github.com/trezcool/masomo-dashboard/core/audit"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/school"
	"github.com/trezcool/masomo-dashboard/core/user"
)

type (
	// DB is an in-memory store for a single school.
	DB struct {
		user      *userTable
		event     *eventTable
		audit     *auditTable
		school    *schoolTables
		analytics *analyticsTables
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	eventTable struct {
		mutex sync.RWMutex
		table map[string]*event.Event
	}

	auditTable struct {
		mutex sync.RWMutex
		logs  []audit.Log // oldest first
	}

	schoolTables struct {
		mutex        sync.RWMutex
		students     []school.Student
		classes      []school.Class
		sections     []school.Section
		academicYear *school.AcademicYear
	}

	analyticsTables struct {
		mutex      sync.RWMutex
		dashboard  analytics.AdminDashboard
		attendance analytics.AttendanceStatistics
		financial  analytics.FinancialStatistics
		trends     map[string]analytics.TrendSeries
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:      &userTable{table: make(map[string]*user.User)},
		event:     &eventTable{table: make(map[string]*event.Event)},
		audit:     &auditTable{},
		school:    &schoolTables{},
		analytics: &analyticsTables{trends: make(map[string]analytics.TrendSeries)},
	}
	return db, nil
}
