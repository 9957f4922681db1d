package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/event"
)

func (s *Server) registerEventAPI(g *echo.Group) {
	g.GET("", s.queryEvents)
	g.POST("", s.createEvent, adminMiddleware())
	g.GET("/upcoming", s.upcomingEvents)
	g.GET("/calendar", s.calendarMonth)

	// detail endpoints
	g.GET("/:id", s.retrieveEvent)
	g.PUT("/:id", s.updateEvent, adminMiddleware())
	g.DELETE("/:id", s.destroyEvent, adminMiddleware())
}

// Handlers

func (s *Server) queryEvents(ctx echo.Context) error {
	filter := new(event.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []event.Event{})
	}
	events, err := s.EventSvc.Query(*filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (s *Server) upcomingEvents(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	events, err := s.EventSvc.Upcoming(limit)
	if err != nil {
		return errors.Wrap(err, "querying upcoming events")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (s *Server) calendarMonth(ctx echo.Context) error {
	now := time.Now()
	month, year := now.Month(), now.Year()

	var flds []core.FieldError
	if m := ctx.QueryParam("month"); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 12 {
			month = time.Month(n)
		} else {
			flds = append(flds, core.FieldError{Field: "month", Error: "Month must be between 1 and 12"})
		}
	}
	if y := ctx.QueryParam("year"); y != "" {
		if n, err := strconv.Atoi(y); err == nil && n > 0 {
			year = n
		} else {
			flds = append(flds, core.FieldError{Field: "year", Error: "Year is invalid"})
		}
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}

	cm, err := s.EventSvc.CalendarMonth(month, year)
	if err != nil {
		return errors.Wrap(err, "building calendar month")
	}
	return ctx.JSON(http.StatusOK, cm)
}

func (s *Server) retrieveEvent(ctx echo.Context) error {
	evt, err := s.EventSvc.Get(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "retrieving event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (s *Server) createEvent(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	evt, err := s.EventSvc.Create(data, contextAnnouncer(ctx))
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (s *Server) updateEvent(ctx echo.Context) error {
	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	evt, err := s.EventSvc.Update(ctx.Param("id"), data, contextAnnouncer(ctx))
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (s *Server) destroyEvent(ctx echo.Context) error {
	if err := s.EventSvc.Delete(ctx.Param("id"), contextAnnouncer(ctx)); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
