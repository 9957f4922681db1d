package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/analytics"
	"github.com/trezcool/masomo-dashboard/core/event"
)

func (s *Server) registerAnalyticsAPI(g *echo.Group) {
	g.GET("/dashboard/admin", s.adminDashboard)
	g.GET("/statistics/attendance", s.attendanceStatistics)
	g.GET("/statistics/financial", s.financialStatistics)
	g.GET("/trends/enrollment", s.trend(analytics.MetricEnrollment))
	g.GET("/trends/performance", s.trend(analytics.MetricPerformance))
}

func (s *Server) registerAuditAPI(g *echo.Group) {
	g.GET("", s.recentAuditLogs)
}

func (s *Server) adminDashboard(ctx echo.Context) error {
	stats, err := s.AnalyticsRepo.AdminDashboard()
	if err != nil {
		return errors.Wrap(err, "getting admin dashboard")
	}
	upcoming, err := s.EventSvc.Query(event.QueryFilter{From: event.DateOf(time.Now()).String()})
	if err != nil {
		return errors.Wrap(err, "counting upcoming events")
	}
	stats.UpcomingEvents = len(upcoming)
	return ctx.JSON(http.StatusOK, stats)
}

func (s *Server) attendanceStatistics(ctx echo.Context) error {
	stats, err := s.AnalyticsRepo.AttendanceStatistics()
	if err != nil {
		return errors.Wrap(err, "getting attendance statistics")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (s *Server) financialStatistics(ctx echo.Context) error {
	stats, err := s.AnalyticsRepo.FinancialStatistics()
	if err != nil {
		return errors.Wrap(err, "getting financial statistics")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (s *Server) trend(metric string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ts, err := s.AnalyticsRepo.Trend(metric)
		if err != nil {
			return errors.Wrapf(err, "getting %s trend", metric)
		}
		return ctx.JSON(http.StatusOK, ts)
	}
}

func (s *Server) recentAuditLogs(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	logs, err := s.Audit.Recent(limit)
	if err != nil {
		return errors.Wrap(err, "querying audit logs")
	}
	return ctx.JSON(http.StatusOK, logs)
}
