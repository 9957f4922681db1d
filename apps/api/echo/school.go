package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/school"
)

func (s *Server) registerSchoolAPI(g *echo.Group) {
	g.GET("/students", s.queryStudents)
	g.GET("/classes", s.queryClasses)
	g.GET("/sections", s.querySections)
	g.GET("/academic-years/current", s.currentAcademicYear)
}

func (s *Server) queryStudents(ctx echo.Context) error {
	filter := new(school.StudentFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, school.StudentList{Students: []school.Student{}})
	}
	filter.Search = core.CleanString(filter.Search)

	students, err := s.SchoolRepo.FilterStudents(*filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, filter.Paginate(students))
}

func (s *Server) queryClasses(ctx echo.Context) error {
	classes, err := s.SchoolRepo.QueryClasses()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (s *Server) querySections(ctx echo.Context) error {
	sections, err := s.SchoolRepo.QuerySections(ctx.QueryParam("class_id"))
	if err != nil {
		return errors.Wrap(err, "querying sections")
	}
	return ctx.JSON(http.StatusOK, sections)
}

func (s *Server) currentAcademicYear(ctx echo.Context) error {
	ay, err := s.SchoolRepo.CurrentAcademicYear()
	if err != nil {
		return errors.Wrap(err, "getting current academic year")
	}
	return ctx.JSON(http.StatusOK, ay)
}
