package apisvc

import (
	"context"
	"strconv"

	"github.com/trezcool/masomo-dashboard/core/analytics"
	"github.com/trezcool/masomo-dashboard/core/audit"
)

func (c *Client) AdminDashboard(ctx context.Context) (analytics.AdminDashboard, error) {
	var stats analytics.AdminDashboard
	err := c.get(ctx, "/analytics/dashboard/admin", nil, &stats)
	return stats, err
}

func (c *Client) AttendanceStatistics(ctx context.Context) (analytics.AttendanceStatistics, error) {
	var stats analytics.AttendanceStatistics
	err := c.get(ctx, "/analytics/statistics/attendance", nil, &stats)
	return stats, err
}

func (c *Client) FinancialStatistics(ctx context.Context) (analytics.FinancialStatistics, error) {
	var stats analytics.FinancialStatistics
	err := c.get(ctx, "/analytics/statistics/financial", nil, &stats)
	return stats, err
}

func (c *Client) EnrollmentTrend(ctx context.Context) (analytics.TrendSeries, error) {
	var series analytics.TrendSeries
	err := c.get(ctx, "/analytics/trends/enrollment", nil, &series)
	return series, err
}

func (c *Client) PerformanceTrend(ctx context.Context) (analytics.TrendSeries, error) {
	var series analytics.TrendSeries
	err := c.get(ctx, "/analytics/trends/performance", nil, &series)
	return series, err
}

// AuditLogs returns the most recent audit log entries, newest first.
func (c *Client) AuditLogs(ctx context.Context, limit int) ([]audit.Log, error) {
	if limit <= 0 {
		limit = audit.DefaultLimit
	}
	var logs []audit.Log
	err := c.get(ctx, "/audit_logs", map[string]string{"limit": strconv.Itoa(limit)}, &logs)
	return logs, err
}
