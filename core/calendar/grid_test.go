package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-dashboard/core/event"
)

func newEvent(id, start, end string) event.Event {
	return event.Event{
		ID:        id,
		Title:     "Event " + id,
		EventType: event.TypeGeneral,
		StartDate: event.MustParseDate(start),
		EndDate:   event.MustParseDate(end),
	}
}

func fixedNow(date string) func() time.Time {
	d := event.MustParseDate(date)
	return func() time.Time { return time.Date(d.Year, d.Month, d.Day, 15, 4, 5, 0, time.Local) }
}

func countDays(g Grid, id string) []string {
	var keys []string
	for _, day := range g.Days {
		for _, evt := range day.Events {
			if evt.ID == id {
				keys = append(keys, day.Key())
			}
		}
	}
	return keys
}

func TestBuildGrid_coversWholeWeeks(t *testing.T) {
	for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
		b := Builder{WeekStart: ws}
		for year := 2015; year <= 2030; year++ {
			for month := time.January; month <= time.December; month++ {
				g := b.BuildGrid(nil, month, year)
				m := NewMonth(year, month)

				n := len(g.Days)
				if n%7 != 0 || n < 28 || n > 42 {
					t.Fatalf("%v (week start %v): %d cells", m, ws, n)
				}
				assert.Equal(t, ws, g.Days[0].Date.Weekday(), "%v first cell", m)

				_, ok := g.Day(m.FirstDay())
				assert.True(t, ok, "%v first day missing", m)
				_, ok = g.Day(m.LastDay())
				assert.True(t, ok, "%v last day missing", m)

				inMonth := 0
				for i, day := range g.Days {
					if i > 0 {
						assert.Equal(t, g.Days[i-1].Date.AddDays(1), day.Date)
					}
					if day.IsInCurrentMonth {
						inMonth++
						assert.Equal(t, month, day.Date.Month)
					}
				}
				assert.Equal(t, m.LastDay().Day, inMonth, "%v days in month", m)
			}
		}
	}
}

func TestBuildGrid_shortestMonth(t *testing.T) {
	// February 2015 starts on a Sunday and has 28 days
	g := BuildGrid(nil, time.February, 2015)
	assert.Len(t, g.Days, 28)
	assert.Len(t, g.Weeks(), 4)
	assert.Equal(t, "2015-02-01", g.Days[0].Key())
	assert.Equal(t, "2015-02-28", g.Days[27].Key())

	g = Builder{WeekStart: time.Monday}.BuildGrid(nil, time.February, 2015)
	assert.Len(t, g.Days, 35)
	assert.Equal(t, "2015-01-26", g.Days[0].Key())
}

func TestBuildGrid_leadingAndTrailingDays(t *testing.T) {
	// March 2024: Friday 1st to Sunday 31st
	g := BuildGrid(nil, time.March, 2024)
	require.Len(t, g.Days, 42)
	assert.Equal(t, "2024-02-25", g.Days[0].Key())
	assert.False(t, g.Days[0].IsInCurrentMonth)
	assert.Equal(t, "2024-03-01", g.Days[5].Key())
	assert.True(t, g.Days[5].IsInCurrentMonth)
	assert.Equal(t, "2024-04-06", g.Days[41].Key())
	assert.False(t, g.Days[41].IsInCurrentMonth)
}

func TestBuildGrid_events(t *testing.T) {
	events := []event.Event{
		newEvent("single", "2024-03-12", "2024-03-12"),
		newEvent("span", "2024-03-14", "2024-03-18"),
		newEvent("before", "2024-01-01", "2024-01-31"),
		newEvent("lead", "2024-02-20", "2024-02-26"),
		newEvent("trail", "2024-03-30", "2024-04-20"),
		newEvent("same-day", "2024-03-12", "2024-03-12"),
	}
	g := BuildGrid(events, time.March, 2024)

	assert.Equal(t, []string{"2024-03-12"}, countDays(g, "single"))
	assert.Equal(t, []string{"2024-03-14", "2024-03-15", "2024-03-16", "2024-03-17", "2024-03-18"}, countDays(g, "span"))
	assert.Empty(t, countDays(g, "before"))
	assert.Equal(t, []string{"2024-02-25", "2024-02-26"}, countDays(g, "lead"))
	assert.Len(t, countDays(g, "trail"), 8) // 03-30 .. 04-06

	// backend order is kept within a day
	day, ok := g.Day(event.MustParseDate("2024-03-12"))
	require.True(t, ok)
	require.Len(t, day.Events, 2)
	assert.Equal(t, "single", day.Events[0].ID)
	assert.Equal(t, "same-day", day.Events[1].ID)
}

func TestBuildGrid_spanCountsEveryDay(t *testing.T) {
	for n := 1; n <= 10; n++ {
		start := event.MustParseDate("2024-07-08")
		evt := event.Event{ID: "e", StartDate: start, EndDate: start.AddDays(n - 1)}
		g := BuildGrid([]event.Event{evt}, time.July, 2024)
		days := countDays(g, "e")
		require.Len(t, days, n)
		for i, key := range days {
			assert.Equal(t, start.AddDays(i).String(), key)
		}
	}
}

func TestBuildGrid_today(t *testing.T) {
	b := Builder{Now: fixedNow("2024-03-20")}
	g := b.BuildGrid(nil, time.March, 2024)

	var today []string
	for _, day := range g.Days {
		if day.IsToday {
			today = append(today, day.Key())
		}
	}
	assert.Equal(t, []string{"2024-03-20"}, today)

	g = b.BuildGrid(nil, time.May, 2024)
	for _, day := range g.Days {
		assert.False(t, day.IsToday)
	}
}

func TestBuildGrid_normalisesMonth(t *testing.T) {
	g := BuildGrid(nil, 13, 2024)
	assert.Equal(t, Month{Year: 2025, Month: time.January}, g.Month)
}

func TestBuilder_FromDays(t *testing.T) {
	evt := newEvent("e1", "2024-03-14", "2024-03-15")
	cm := event.CalendarMonth{
		Month: 3,
		Year:  2024,
		Days: map[string][]event.Event{
			"2024-03-14": {evt},
			"2024-03-15": {evt},
			"2024-05-01": {newEvent("far", "2024-05-01", "2024-05-01")},
		},
	}
	g := Builder{}.FromCalendarMonth(cm)
	assert.Equal(t, []string{"2024-03-14", "2024-03-15"}, countDays(g, "e1"))
	assert.Empty(t, countDays(g, "far"))

	// same layout as BuildGrid from the flat list
	flat := BuildGrid([]event.Event{evt}, time.March, 2024)
	assert.Equal(t, flat, g)
}
