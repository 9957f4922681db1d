package event_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/audit"
	"github.com/trezcool/masomo-dashboard/core/event"
	inmemdb "github.com/trezcool/masomo-dashboard/storage/database/inmem"
)

func newService(t *testing.T) (*event.Service, *audit.Recorder) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	rec := audit.NewRecorder(inmemdb.NewAuditRepository(db))
	return event.NewService(inmemdb.NewEventRepository(db), rec, nil), rec
}

var admin = &event.Announcer{ID: "u1", Name: "Admin"}

func TestService_CRUD(t *testing.T) {
	svc, rec := newService(t)

	_, err := svc.Create(event.NewEvent{Title: " ", StartDate: "2024-03-01", EndDate: "2024-03-01"}, admin)
	assert.Equal(t, map[string]string{"title": "Title is required"}, core.FieldErrors(err))

	evt, err := svc.Create(event.NewEvent{Title: "Trip", StartDate: "2024-03-01", EndDate: "2024-03-02"}, admin)
	require.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, event.TypeGeneral, evt.EventType)

	updated, err := svc.Update(evt.ID, event.UpdateEvent{Title: "School trip", StartDate: "2024-03-01", EndDate: "2024-03-03"}, &event.Announcer{ID: "u2", Name: "Teacher"})
	require.NoError(t, err)
	assert.Equal(t, "School trip", updated.Title)
	assert.Equal(t, admin, updated.AnnouncedBy, "announcer is kept")

	_, err = svc.Update("missing", event.UpdateEvent{Title: "X", StartDate: "2024-03-01", EndDate: "2024-03-01"}, admin)
	assert.Equal(t, event.ErrNotFound, err)

	require.NoError(t, svc.Delete(evt.ID, admin))
	_, err = svc.Get(evt.ID)
	assert.Equal(t, event.ErrNotFound, err)

	logs, err := rec.Recent(0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []string{audit.ActionDelete, audit.ActionUpdate, audit.ActionCreate}, []string{logs[0].Action, logs[1].Action, logs[2].Action})
	assert.Equal(t, "Teacher", logs[1].Actor)
}

func TestService_Query(t *testing.T) {
	svc, _ := newService(t)
	for _, ne := range []event.NewEvent{
		{Title: "Science fair", EventType: event.TypeAcademic, StartDate: "2024-03-05", EndDate: "2024-03-05", Location: "Lab"},
		{Title: "Football final", EventType: event.TypeSports, StartDate: "2024-03-20", EndDate: "2024-03-20"},
		{Title: "Easter break", EventType: event.TypeHoliday, StartDate: "2024-03-28", EndDate: "2024-04-08"},
	} {
		_, err := svc.Create(ne, admin)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		filter  event.QueryFilter
		want    []string
		wantErr bool
	}{
		{name: "all", filter: event.QueryFilter{}, want: []string{"Science fair", "Football final", "Easter break"}},
		{name: "type", filter: event.QueryFilter{EventType: " SPORTS "}, want: []string{"Football final"}},
		{name: "search location", filter: event.QueryFilter{Search: "lab"}, want: []string{"Science fair"}},
		{name: "overlapping range", filter: event.QueryFilter{From: "2024-04-01", To: "2024-04-30"}, want: []string{"Easter break"}},
		{name: "bad date", filter: event.QueryFilter{From: "yesterday"}, wantErr: true},
		{name: "bad type", filter: event.QueryFilter{EventType: "party"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := svc.Query(tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			titles := make([]string, 0, len(events))
			for _, evt := range events {
				titles = append(titles, evt.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestService_CalendarMonth(t *testing.T) {
	svc, _ := newService(t)
	for _, ne := range []event.NewEvent{
		{Title: "Spans in", StartDate: "2024-02-28", EndDate: "2024-03-02"},
		{Title: "Trip", StartDate: "2024-03-14", EndDate: "2024-03-14"},
		{Title: "Spans out", StartDate: "2024-03-30", EndDate: "2024-04-02"},
		{Title: "April", StartDate: "2024-04-10", EndDate: "2024-04-10"},
	} {
		_, err := svc.Create(ne, admin)
		require.NoError(t, err)
	}

	cm, err := svc.CalendarMonth(time.March, 2024)
	require.NoError(t, err)
	assert.Equal(t, 3, cm.Month)
	assert.Equal(t, 2024, cm.Year)

	keys := map[string]string{}
	for day, events := range cm.Days {
		require.Len(t, events, 1, day)
		keys[day] = events[0].Title
	}
	assert.Equal(t, map[string]string{
		"2024-03-01": "Spans in",
		"2024-03-02": "Spans in",
		"2024-03-14": "Trip",
		"2024-03-30": "Spans out",
		"2024-03-31": "Spans out",
	}, keys)
}

type failingAuditRepo struct{}

func (failingAuditRepo) CreateLog(audit.Log) (audit.Log, error) {
	return audit.Log{}, errors.New("audit store unavailable")
}

func (failingAuditRepo) RecentLogs(int) ([]audit.Log, error) { return nil, nil }

type errorLogger struct {
	core.Logger
	errors []string
}

func (l *errorLogger) Error(msg string, _ ...interface{}) { l.errors = append(l.errors, msg) }

func TestService_auditFailureKeepsChange(t *testing.T) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	logger := &errorLogger{Logger: core.OrNop(nil)}
	svc := event.NewService(inmemdb.NewEventRepository(db), audit.NewRecorder(failingAuditRepo{}), logger)

	evt, err := svc.Create(event.NewEvent{Title: "Trip", StartDate: "2024-03-01", EndDate: "2024-03-01"}, admin)
	require.NoError(t, err)
	_, err = svc.Get(evt.ID)
	require.NoError(t, err, "the event is saved")

	_, err = svc.Update(evt.ID, event.UpdateEvent{Title: "Moved", StartDate: "2024-03-02", EndDate: "2024-03-02"}, admin)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(evt.ID, admin))

	_, err = svc.Get(evt.ID)
	assert.Equal(t, event.ErrNotFound, err)
	require.Len(t, logger.errors, 3)
	assert.Contains(t, logger.errors[0], "recording event create "+evt.ID)
	assert.Contains(t, logger.errors[2], "audit store unavailable")
}
