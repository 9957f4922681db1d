package calendar

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core/event"
)

// Month is a year/month cursor used for calendar navigation.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normalises out of range months the way time.Date does: month 13 of 2024 is January 2025.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// CurrentMonth returns the month of now in its location.
func CurrentMonth(now time.Time) Month {
	return NewMonth(now.Year(), now.Month())
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, errors.Wrapf(err, "month %q must be YYYY-MM", s)
	}
	return NewMonth(t.Year(), t.Month()), nil
}

func (m Month) Next() Month { return NewMonth(m.Year, m.Month+1) }

func (m Month) Prev() Month { return NewMonth(m.Year, m.Month-1) }

func (m Month) FirstDay() event.Date {
	return event.Date{Year: m.Year, Month: m.Month, Day: 1}
}

func (m Month) LastDay() event.Date {
	return event.DateOf(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

func (m Month) Contains(d event.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
