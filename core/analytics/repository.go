package analytics

type Repository interface {
	AdminDashboard() (AdminDashboard, error)
	AttendanceStatistics() (AttendanceStatistics, error)
	FinancialStatistics() (FinancialStatistics, error)
	Trend(metric string) (TrendSeries, error)
}

// Trend metrics
const (
	MetricEnrollment  = "enrollment"
	MetricPerformance = "performance"
)
