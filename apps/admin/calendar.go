package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/trezcool/masomo-dashboard/core/calendar"
	"github.com/trezcool/masomo-dashboard/core/event"
)

// calendar fetches the events of month (YYYY-MM, empty for the current month) and prints its grid.
func (cli *commandLine) calendar(month string, monday bool) error {
	m := calendar.CurrentMonth(cli.now())
	if month != "" {
		var err error
		if m, err = calendar.ParseMonth(month); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.conf.API.Timeout)
	defer cancel()
	cm, err := cli.api.CalendarMonth(ctx, m.Month, m.Year)
	if err != nil {
		return err
	}

	b := calendar.Builder{WeekStart: time.Sunday, Now: cli.now}
	if monday {
		b.WeekStart = time.Monday
	}
	printGrid(cli.out, b.FromDays(cm.Days, m.Month, m.Year))
	return nil
}

// printGrid writes the month as a table of weeks, then the events it shows.
// Days with events are marked with "*", today is marked with "<".
func printGrid(w io.Writer, g calendar.Grid) {
	fmt.Fprintf(w, "%s %d\n", g.Month.Month, g.Month.Year)

	weeks := g.Weeks()
	if len(weeks) == 0 {
		return
	}
	for _, d := range weeks[0] {
		fmt.Fprintf(w, "%3s ", d.Date.Weekday().String()[:2])
	}
	fmt.Fprintln(w)

	var (
		listed = make(map[string]bool)
		events []event.Event
	)
	for _, week := range weeks {
		for _, d := range week {
			if !d.IsInCurrentMonth {
				fmt.Fprint(w, "  . ")
				continue
			}
			mark := " "
			switch {
			case d.IsToday:
				mark = "<"
			case len(d.Events) > 0:
				mark = "*"
			}
			fmt.Fprintf(w, "%3d%s", d.Date.Day, mark)

			for _, evt := range d.Events {
				if !listed[evt.ID] {
					listed[evt.ID] = true
					events = append(events, evt)
				}
			}
		}
		fmt.Fprintln(w)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "\nNo events.")
		return
	}
	fmt.Fprintln(w, "\nEvents:")
	for _, evt := range events {
		dates := evt.StartDate.String()
		if evt.EndDate != evt.StartDate {
			dates += ".." + evt.EndDate.String()
		}
		fmt.Fprintf(w, "  %-22s %s [%s]\n", dates, evt.Title, evt.EventType)
	}
}
