package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo-dashboard/core"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		payload  NewEvent
		wantErrs map[string]string
	}{
		{
			name:     "valid",
			payload:  NewEvent{Title: "X", StartDate: "2024-02-01", EndDate: "2024-02-05"},
			wantErrs: map[string]string{},
		},
		{
			name:     "single day",
			payload:  NewEvent{Title: "X", StartDate: "2024-02-01", EndDate: "2024-02-01"},
			wantErrs: map[string]string{},
		},
		{
			name:     "empty title",
			payload:  NewEvent{Title: "", StartDate: "2024-01-01", EndDate: "2024-01-01"},
			wantErrs: map[string]string{"title": "Title is required"},
		},
		{
			name:     "blank title",
			payload:  NewEvent{Title: "  \t ", StartDate: "2024-01-01", EndDate: "2024-01-01"},
			wantErrs: map[string]string{"title": "Title is required"},
		},
		{
			name:     "end before start",
			payload:  NewEvent{Title: "X", StartDate: "2024-02-05", EndDate: "2024-02-01"},
			wantErrs: map[string]string{"end_date": "End date must be on or after start date"},
		},
		{
			name:    "everything missing",
			payload: NewEvent{},
			wantErrs: map[string]string{
				"title":      "Title is required",
				"start_date": "Start date is required",
				"end_date":   "End date is required",
			},
		},
		{
			name:     "missing end date",
			payload:  NewEvent{Title: "X", StartDate: "2024-02-05"},
			wantErrs: map[string]string{"end_date": "End date is required"},
		},
		{
			name:     "malformed start date",
			payload:  NewEvent{Title: "X", StartDate: "05/02/2024", EndDate: "2024-02-01"},
			wantErrs: map[string]string{"start_date": "Start date must be a valid date (YYYY-MM-DD)"},
		},
		{
			name:     "unknown event type",
			payload:  NewEvent{Title: "X", EventType: "party", StartDate: "2024-02-01", EndDate: "2024-02-01"},
			wantErrs: map[string]string{"event_type": "Event type is invalid"},
		},
		{
			name:     "known event type, any case",
			payload:  NewEvent{Title: "X", EventType: "Exam", StartDate: "2024-02-01", EndDate: "2024-02-01"},
			wantErrs: map[string]string{},
		},
		{
			name:    "all rules at once",
			payload: NewEvent{Title: " ", StartDate: "2024-03-10", EndDate: "2024-03-09"},
			wantErrs: map[string]string{
				"title":    "Title is required",
				"end_date": "End date must be on or after start date",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.payload)
			assert.Equal(t, len(tt.wantErrs) == 0, res.Valid)
			assert.Equal(t, tt.wantErrs, res.FieldErrors)
		})
	}
}

func TestValidate_doesNotModifyPayload(t *testing.T) {
	ne := NewEvent{Title: "  Sports day  ", StartDate: " 2024-02-01", EndDate: "2024-02-01 "}
	_ = Validate(ne)
	assert.Equal(t, "  Sports day  ", ne.Title)
	assert.Equal(t, " 2024-02-01", ne.StartDate)
}

func TestValidationResult_Err(t *testing.T) {
	assert.NoError(t, Validate(NewEvent{Title: "X", StartDate: "2024-02-01", EndDate: "2024-02-01"}).Err())

	err := Validate(NewEvent{StartDate: "2024-02-05", EndDate: "2024-02-01"}).Err()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Err() = %T; want *core.ValidationError", err)
	}
	assert.Equal(t, []core.FieldError{
		{Field: "title", Error: "Title is required"},
		{Field: "end_date", Error: "End date must be on or after start date"},
	}, vErr.Fields)
	assert.Equal(t, vErr.FieldMap(), core.FieldErrors(err))
}

func TestValidateUpdate(t *testing.T) {
	res := ValidateUpdate(UpdateEvent{Title: "X", StartDate: "2024-02-05", EndDate: "2024-02-01"})
	assert.False(t, res.Valid)
	assert.Equal(t, map[string]string{"end_date": "End date must be on or after start date"}, res.FieldErrors)
}
