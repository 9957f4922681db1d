package calendar

import (
	"time"

	"github.com/trezcool/masomo-dashboard/core/event"
)

// Day is one cell of a month grid.
type Day struct {
	Date             event.Date
	IsInCurrentMonth bool
	IsToday          bool
	Events           []event.Event
}

// Key returns the YYYY-MM-DD bucketing key of the day.
func (d Day) Key() string { return d.Date.String() }

// Grid is a whole number of weeks covering one month.
type Grid struct {
	Month Month
	Days  []Day
}

// Weeks splits the grid into rows of 7 days.
func (g Grid) Weeks() [][]Day {
	weeks := make([][]Day, 0, len(g.Days)/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		weeks = append(weeks, g.Days[i:i+7])
	}
	return weeks
}

// Day returns the cell for d, if the grid shows it.
func (g Grid) Day(d event.Date) (Day, bool) {
	if len(g.Days) == 0 {
		return Day{}, false
	}
	idx := g.Days[0].Date.DaysUntil(d)
	if idx < 0 || idx >= len(g.Days) {
		return Day{}, false
	}
	return g.Days[idx], true
}

// Builder lays out month grids. The zero value starts weeks on Sunday and uses the local clock.
type Builder struct {
	WeekStart time.Weekday
	Now       func() time.Time
}

var defaultBuilder Builder

// BuildGrid buckets events onto the grid of month/year, weeks starting on Sunday.
func BuildGrid(events []event.Event, month time.Month, year int) Grid {
	return defaultBuilder.BuildGrid(events, month, year)
}

// BuildGrid buckets every event onto each day of [StartDate, EndDate] shown by the grid.
// Within a day, events keep the order they were given in.
func (b Builder) BuildGrid(events []event.Event, month time.Month, year int) Grid {
	g := b.layout(month, year)
	if len(g.Days) == 0 {
		return g
	}
	first, last := g.Days[0].Date, g.Days[len(g.Days)-1].Date
	for _, evt := range events {
		if evt.EndDate.Before(first) || evt.StartDate.After(last) {
			continue
		}
		from, to := evt.StartDate, evt.EndDate
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}
		for i := first.DaysUntil(from); i <= first.DaysUntil(to); i++ {
			g.Days[i].Events = append(g.Days[i].Events, evt)
		}
	}
	return g
}

// FromDays lays out the grid of month/year and fills it from a date-keyed bucket map,
// as returned by GET /events/calendar. Keys that are not shown by the grid are ignored.
func (b Builder) FromDays(days map[string][]event.Event, month time.Month, year int) Grid {
	g := b.layout(month, year)
	for i := range g.Days {
		if evts, ok := days[g.Days[i].Key()]; ok && len(evts) > 0 {
			g.Days[i].Events = append(g.Days[i].Events, evts...)
		}
	}
	return g
}

// FromCalendarMonth is FromDays on a decoded GET /events/calendar body.
func (b Builder) FromCalendarMonth(cm event.CalendarMonth) Grid {
	return b.FromDays(cm.Days, time.Month(cm.Month), cm.Year)
}

func (b Builder) layout(month time.Month, year int) Grid {
	m := NewMonth(year, month)
	start, end := m.FirstDay(), m.LastDay()

	// back to the week start, forward to the week end
	start = start.AddDays(-daysSince(start.Weekday(), b.WeekStart))
	end = end.AddDays(6 - daysSince(end.Weekday(), b.WeekStart))

	today := event.DateOf(b.now())
	n := start.DaysUntil(end) + 1
	days := make([]Day, 0, n)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, Day{
			Date:             d,
			IsInCurrentMonth: m.Contains(d),
			IsToday:          d == today,
		})
	}
	return Grid{Month: m, Days: days}
}

func (b Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// daysSince returns how many days wd is past the week start ws (0..6).
func daysSince(wd, ws time.Weekday) int {
	return (int(wd) - int(ws) + 7) % 7
}
