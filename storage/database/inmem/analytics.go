package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/analytics"
)

type analyticsRepository struct {
	db *analyticsTables
}

var _ analytics.Repository = (*analyticsRepository)(nil)

func NewAnalyticsRepository(db *DB) analytics.Repository {
	return &analyticsRepository{db: db.analytics}
}

func (repo *analyticsRepository) AdminDashboard() (analytics.AdminDashboard, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.dashboard, nil
}

func (repo *analyticsRepository) AttendanceStatistics() (analytics.AttendanceStatistics, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	stats := repo.db.attendance
	stats.ByClass = append([]analytics.ClassAttendance{}, stats.ByClass...)
	return stats, nil
}

func (repo *analyticsRepository) FinancialStatistics() (analytics.FinancialStatistics, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.financial, nil
}

func (repo *analyticsRepository) Trend(metric string) (analytics.TrendSeries, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ts, ok := repo.db.trends[metric]
	if !ok {
		return analytics.TrendSeries{}, errors.Errorf("unknown trend metric %q", metric)
	}
	ts.Points = append([]analytics.TrendPoint{}, ts.Points...)
	return ts, nil
}
