package event

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/audit"
)

// DefaultUpcomingLimit is the number of events returned by Service.Upcoming.
const DefaultUpcomingLimit = 5

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		CreateEvent(evt Event) (Event, error)
		// FilterEvents returns the events matching filter, ordered by start date.
		FilterEvents(filter QueryFilter) ([]Event, error)
		GetEventByID(id string) (Event, error)
		UpdateEvent(evt Event) (Event, error)
		DeleteEvent(id string) error
	}

	Service struct {
		repo   Repository
		audit  *audit.Recorder
		logger core.Logger
		now    func() time.Time
	}
)

// NewService returns an event Service. Changes are recorded on rec when it is not nil.
func NewService(repo Repository, rec *audit.Recorder, logger core.Logger) *Service {
	return &Service{repo: repo, audit: rec, logger: core.OrNop(logger), now: time.Now}
}

// record runs after the change is saved: a failing audit write is logged, the change stands.
func (svc *Service) record(action, id string, actor *Announcer) {
	var name string
	if actor != nil {
		name = actor.Name
	}
	if err := svc.audit.Record(action, "event", id, name); err != nil {
		err = pkgerrors.Wrapf(err, "recording event %s %s", action, id)
		svc.logger.Error(err.Error(), err)
	}
}

func (svc *Service) Create(ne NewEvent, announcer *Announcer) (Event, error) {
	evt, err := ne.Event(uuid.New().String(), announcer)
	if err != nil {
		return Event{}, err
	}
	if evt, err = svc.repo.CreateEvent(evt); err != nil {
		return Event{}, err
	}
	svc.record(audit.ActionCreate, evt.ID, announcer)
	return evt, nil
}

func (svc *Service) Get(id string) (Event, error) {
	return svc.repo.GetEventByID(id)
}

// Query returns the events matching filter. From and To must be YYYY-MM-DD when set.
func (svc *Service) Query(filter QueryFilter) ([]Event, error) {
	filter.Clean()
	if err := core.Validate.Struct(filter); err != nil {
		return nil, err
	}
	return svc.repo.FilterEvents(filter)
}

// Upcoming returns the events that have not ended yet, soonest first.
func (svc *Service) Upcoming(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	events, err := svc.repo.FilterEvents(QueryFilter{From: DateOf(svc.now()).String()})
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Update replaces the editable fields of an event. The announcer is kept.
func (svc *Service) Update(id string, ue UpdateEvent, actor *Announcer) (Event, error) {
	orig, err := svc.repo.GetEventByID(id)
	if err != nil {
		return Event{}, err
	}
	evt, err := NewEvent(ue).Event(orig.ID, orig.AnnouncedBy)
	if err != nil {
		return Event{}, err
	}
	if evt, err = svc.repo.UpdateEvent(evt); err != nil {
		return Event{}, err
	}
	svc.record(audit.ActionUpdate, evt.ID, actor)
	return evt, nil
}

func (svc *Service) Delete(id string, actor *Announcer) error {
	if err := svc.repo.DeleteEvent(id); err != nil {
		return err
	}
	svc.record(audit.ActionDelete, id, actor)
	return nil
}

// CalendarMonth buckets the events of month/year by day. An event is listed on every
// day of the month it covers. Days without events are omitted.
func (svc *Service) CalendarMonth(month time.Month, year int) (CalendarMonth, error) {
	first := Date{Year: year, Month: month, Day: 1}
	last := first.AddDays(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day() - 1)

	events, err := svc.repo.FilterEvents(QueryFilter{From: first.String(), To: last.String()})
	if err != nil {
		return CalendarMonth{}, err
	}
	days := make(map[string][]Event)
	for _, evt := range events {
		d := evt.StartDate
		if d.Before(first) {
			d = first
		}
		for ; !d.After(evt.EndDate) && !d.After(last); d = d.AddDays(1) {
			days[d.String()] = append(days[d.String()], evt)
		}
	}
	return CalendarMonth{Month: int(month), Year: year, Days: days}, nil
}

// Matches reports whether evt satisfies every set field of the filter.
// Search is a case-insensitive match on the title, description or location.
// From and To keep the events that overlap [From, To].
func (qf QueryFilter) Matches(evt Event) bool {
	if qf.EventType != "" && evt.EventType != qf.EventType {
		return false
	}
	if qf.From != "" {
		if from, err := ParseDate(qf.From); err == nil && evt.EndDate.Before(from) {
			return false
		}
	}
	if qf.To != "" {
		if to, err := ParseDate(qf.To); err == nil && evt.StartDate.After(to) {
			return false
		}
	}
	if qf.Search != "" {
		search := strings.ToLower(qf.Search)
		for _, s := range []string{evt.Title, evt.Description.String, evt.Location.String} {
			if strings.Contains(strings.ToLower(s), search) {
				return true
			}
		}
		return false
	}
	return true
}

// SortByStart orders events by start date, then end date, then title.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.StartDate != b.StartDate {
			return a.StartDate.Before(b.StartDate)
		}
		if a.EndDate != b.EndDate {
			return a.EndDate.Before(b.EndDate)
		}
		return a.Title < b.Title
	})
}
