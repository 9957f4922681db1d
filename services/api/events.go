package apisvc

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-dashboard/core/event"
)

func eventPath(id string) string {
	return "/events/" + url.PathEscape(id)
}

func (c *Client) Events(ctx context.Context, filter event.QueryFilter) ([]event.Event, error) {
	filter.Clean()
	q := make(map[string]string)
	setString(q, "search", filter.Search)
	setString(q, "event_type", string(filter.EventType))
	setString(q, "from", filter.From)
	setString(q, "to", filter.To)

	var events []event.Event
	err := c.get(ctx, "/events", q, &events)
	return events, err
}

func (c *Client) UpcomingEvents(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	err := c.get(ctx, "/events/upcoming", nil, &events)
	return events, err
}

func (c *Client) Event(ctx context.Context, id string) (event.Event, error) {
	var evt event.Event
	err := c.get(ctx, eventPath(id), nil, &evt)
	return evt, err
}

// CreateEvent validates ne locally and only calls the backend if it is valid.
func (c *Client) CreateEvent(ctx context.Context, ne event.NewEvent) (event.Event, error) {
	if res := event.Validate(ne); !res.Valid {
		return event.Event{}, res.Err()
	}
	var evt event.Event
	if err := c.do(ctx, rest.Post, "/events", nil, ne, &evt); err != nil {
		return event.Event{}, errors.Wrap(err, "creating event")
	}
	return evt, nil
}

// UpdateEvent validates ue locally and only calls the backend if it is valid.
func (c *Client) UpdateEvent(ctx context.Context, id string, ue event.UpdateEvent) (event.Event, error) {
	if res := event.ValidateUpdate(ue); !res.Valid {
		return event.Event{}, res.Err()
	}
	var evt event.Event
	if err := c.do(ctx, rest.Put, eventPath(id), nil, ue, &evt); err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	return evt, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return errors.Wrap(c.do(ctx, rest.Delete, eventPath(id), nil, nil, nil), "deleting event")
}

// CalendarMonth returns the events of month/year bucketed by YYYY-MM-DD.
func (c *Client) CalendarMonth(ctx context.Context, month time.Month, year int) (event.CalendarMonth, error) {
	q := map[string]string{
		"month": strconv.Itoa(int(month)),
		"year":  strconv.Itoa(year),
	}
	var cm event.CalendarMonth
	err := c.get(ctx, "/events/calendar", q, &cm)
	return cm, err
}
