package event

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-dashboard/core"
)

type Type string

// Event types
const (
	TypeGeneral  Type = "general"
	TypeAcademic Type = "academic"
	TypeExam     Type = "exam"
	TypeHoliday  Type = "holiday"
	TypeMeeting  Type = "meeting"
	TypeSports   Type = "sports"
	TypeCultural Type = "cultural"
)

var (
	AllTypes = []Type{TypeGeneral, TypeAcademic, TypeExam, TypeHoliday, TypeMeeting, TypeSports, TypeCultural}

	ErrEndBeforeStart = errors.New("end date is before start date")
)

// Announcer is the user who published an event or notice.
type Announcer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is a dated entity (event or notice). StartDate and EndDate are both inclusive.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	EventType   Type        `json:"event_type"`
	StartDate   Date        `json:"start_date"`
	EndDate     Date        `json:"end_date"`
	Location    null.String `json:"location"`
	AnnouncedBy *Announcer  `json:"announced_by,omitempty"`
	IsAllDay    bool        `json:"is_all_day"`
}

// UnmarshalJSON rejects events whose dates are missing, malformed or out of order.
func (e *Event) UnmarshalJSON(data []byte) error {
	type event Event
	var raw struct {
		event
		StartDate *Date `json:"start_date"`
		EndDate   *Date `json:"end_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decoding event")
	}
	if raw.StartDate == nil || raw.EndDate == nil {
		return errors.Wrap(ErrInvalidDate, "event start_date and end_date are required")
	}
	*e = Event(raw.event)
	e.StartDate = *raw.StartDate
	e.EndDate = *raw.EndDate
	if e.EndDate.Before(e.StartDate) {
		return errors.Wrapf(ErrEndBeforeStart, "event %q", e.ID)
	}
	return nil
}

// Covers reports whether d falls within [StartDate, EndDate].
func (e Event) Covers(d Date) bool {
	return !d.Before(e.StartDate) && !d.After(e.EndDate)
}

// Days returns the number of calendar days the event spans.
func (e Event) Days() int {
	return e.StartDate.DaysUntil(e.EndDate) + 1
}

// NewEvent contains the information submitted by the event form.
// Dates are kept as entered (YYYY-MM-DD) so that the form can report on them.
type NewEvent struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description,omitempty"`
	EventType   Type   `json:"event_type,omitempty" validate:"omitempty,oneof=general academic exam holiday meeting sports cultural"`
	StartDate   string `json:"start_date" validate:"required,isodate"`
	EndDate     string `json:"end_date" validate:"required,isodate"`
	Location    string `json:"location,omitempty"`
	IsAllDay    bool   `json:"is_all_day"`
}

// UpdateEvent defines what information may be provided to modify an existing Event.
type UpdateEvent NewEvent

// NewEventFrom pre-fills a form payload from an existing Event.
func NewEventFrom(e Event) NewEvent {
	return NewEvent{
		Title:       e.Title,
		Description: e.Description.String,
		EventType:   e.EventType,
		StartDate:   e.StartDate.String(),
		EndDate:     e.EndDate.String(),
		Location:    e.Location.String,
		IsAllDay:    e.IsAllDay,
	}
}

func (ne *NewEvent) clean() {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)
	ne.StartDate = core.CleanString(ne.StartDate)
	ne.EndDate = core.CleanString(ne.EndDate)
	ne.Location = core.CleanString(ne.Location)
	ne.EventType = Type(core.CleanString(string(ne.EventType), true /* lower */))
}

// Event builds the Event described by a valid payload.
func (ne NewEvent) Event(id string, announcer *Announcer) (Event, error) {
	if res := Validate(ne); !res.Valid {
		return Event{}, res.Err()
	}
	ne.clean()
	start, _ := ParseDate(ne.StartDate)
	end, _ := ParseDate(ne.EndDate)
	evtType := ne.EventType
	if evtType == "" {
		evtType = TypeGeneral
	}
	return Event{
		ID:          id,
		Title:       ne.Title,
		Description: optionalString(ne.Description),
		EventType:   evtType,
		StartDate:   start,
		EndDate:     end,
		Location:    optionalString(ne.Location),
		AnnouncedBy: announcer,
		IsAllDay:    ne.IsAllDay,
	}, nil
}

func optionalString(s string) null.String {
	return null.NewString(s, strings.TrimSpace(s) != "")
}

// QueryFilter narrows GET /events.
type QueryFilter struct {
	Search    string `json:"search" query:"search"`
	EventType Type   `json:"event_type" query:"event_type" validate:"omitempty,oneof=general academic exam holiday meeting sports cultural"`
	From      string `json:"from" query:"from" validate:"omitempty,isodate"`
	To        string `json:"to" query:"to" validate:"omitempty,isodate"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.EventType == "" && qf.From == "" && qf.To == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.EventType = Type(core.CleanString(string(qf.EventType), true /* lower */))
	qf.From = core.CleanString(qf.From)
	qf.To = core.CleanString(qf.To)
}

// CalendarMonth is the body of GET /events/calendar.
type CalendarMonth struct {
	Month int                `json:"month"`
	Year  int                `json:"year"`
	Days  map[string][]Event `json:"days"`
}
