package event

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_UnmarshalJSON(t *testing.T) {
	t.Run("full event", func(t *testing.T) {
		data := []byte(`{
			"id": "evt-1",
			"title": "Sports Day",
			"description": null,
			"event_type": "sports",
			"start_date": "2024-05-10",
			"end_date": "2024-05-11T00:00:00Z",
			"location": "Main field",
			"announced_by": {"id": "u1", "name": "Principal"},
			"is_all_day": true
		}`)
		var e Event
		require.NoError(t, json.Unmarshal(data, &e))
		assert.Equal(t, "evt-1", e.ID)
		assert.Equal(t, TypeSports, e.EventType)
		assert.Equal(t, "2024-05-10", e.StartDate.String())
		assert.Equal(t, "2024-05-11", e.EndDate.String())
		assert.False(t, e.Description.Valid)
		assert.Equal(t, "Main field", e.Location.String)
		require.NotNil(t, e.AnnouncedBy)
		assert.Equal(t, "Principal", e.AnnouncedBy.Name)
		assert.True(t, e.IsAllDay)
		assert.Equal(t, 2, e.Days())
	})

	t.Run("missing dates", func(t *testing.T) {
		var e Event
		err := json.Unmarshal([]byte(`{"id": "evt-1", "start_date": "2024-05-10"}`), &e)
		assert.True(t, errors.Is(err, ErrInvalidDate), "err = %v", err)
	})

	t.Run("end before start", func(t *testing.T) {
		var e Event
		err := json.Unmarshal([]byte(`{"id": "evt-1", "start_date": "2024-05-10", "end_date": "2024-05-09"}`), &e)
		assert.True(t, errors.Is(err, ErrEndBeforeStart), "err = %v", err)
	})

	t.Run("bad date", func(t *testing.T) {
		var e Event
		err := json.Unmarshal([]byte(`{"id": "evt-1", "start_date": "soon", "end_date": "2024-05-09"}`), &e)
		assert.Error(t, err)
	})
}

func TestEvent_Covers(t *testing.T) {
	e := Event{StartDate: MustParseDate("2024-01-30"), EndDate: MustParseDate("2024-02-02")}
	assert.False(t, e.Covers(MustParseDate("2024-01-29")))
	assert.True(t, e.Covers(MustParseDate("2024-01-30")))
	assert.True(t, e.Covers(MustParseDate("2024-02-01")))
	assert.True(t, e.Covers(MustParseDate("2024-02-02")))
	assert.False(t, e.Covers(MustParseDate("2024-02-03")))
	assert.Equal(t, 4, e.Days())
}

func TestNewEvent_Event(t *testing.T) {
	announcer := &Announcer{ID: "u1", Name: "Admin"}

	e, err := NewEvent{Title: " Exams ", StartDate: "2024-06-01", EndDate: "2024-06-07", Location: " "}.Event("evt-9", announcer)
	require.NoError(t, err)
	assert.Equal(t, "Exams", e.Title)
	assert.Equal(t, TypeGeneral, e.EventType)
	assert.False(t, e.Location.Valid)
	assert.Equal(t, announcer, e.AnnouncedBy)
	assert.Equal(t, 7, e.Days())

	_, err = NewEvent{Title: "Exams", StartDate: "2024-06-07", EndDate: "2024-06-01"}.Event("evt-9", nil)
	assert.Error(t, err)
}

func TestNewEventFrom(t *testing.T) {
	e, err := NewEvent{Title: "Exams", EventType: TypeExam, StartDate: "2024-06-01", EndDate: "2024-06-07", Location: "Hall"}.Event("evt-9", nil)
	require.NoError(t, err)

	ne := NewEventFrom(e)
	assert.Equal(t, NewEvent{Title: "Exams", EventType: TypeExam, StartDate: "2024-06-01", EndDate: "2024-06-07", Location: "Hall"}, ne)
}
