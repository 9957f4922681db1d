package analytics

// AdminDashboard is the body of GET /analytics/dashboard/admin.
type AdminDashboard struct {
	TotalStudents     int     `json:"total_students"`
	TotalTeachers     int     `json:"total_teachers"`
	TotalClasses      int     `json:"total_classes"`
	AttendanceRate    float64 `json:"attendance_rate"`
	FeeCollectionRate float64 `json:"fee_collection_rate"`
	UpcomingEvents    int     `json:"upcoming_events"`
}

type ClassAttendance struct {
	ClassID   string  `json:"class_id"`
	ClassName string  `json:"class_name"`
	Rate      float64 `json:"rate"`
}

type AttendanceStatistics struct {
	Period  string            `json:"period"`
	Present int               `json:"present"`
	Absent  int               `json:"absent"`
	Late    int               `json:"late"`
	Rate    float64           `json:"rate"`
	ByClass []ClassAttendance `json:"by_class"`
}

type FinancialStatistics struct {
	Currency       string  `json:"currency"`
	Billed         float64 `json:"billed"`
	Collected      float64 `json:"collected"`
	Outstanding    float64 `json:"outstanding"`
	CollectionRate float64 `json:"collection_rate"`
}

type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// TrendSeries is the body of the /analytics/trends/* endpoints.
type TrendSeries struct {
	Metric string       `json:"metric"`
	Points []TrendPoint `json:"points"`
}

// Latest returns the last point of the series.
func (ts TrendSeries) Latest() (TrendPoint, bool) {
	if len(ts.Points) == 0 {
		return TrendPoint{}, false
	}
	return ts.Points[len(ts.Points)-1], true
}
