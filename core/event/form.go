package event

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// SubmitErrorText is shown when the payload is valid but saving it failed.
const SubmitErrorText = "Failed to save event. Please try again."

// SaveFunc submits a valid payload to the backend.
type SaveFunc func(ctx context.Context, ne NewEvent) error

// Form holds the state of a create/update event form.
type Form struct {
	payload   NewEvent
	errors    map[string]string
	submitErr string
}

func NewForm(initial NewEvent) *Form {
	return &Form{payload: initial, errors: map[string]string{}}
}

// Set updates a field by its JSON name. A field's error is cleared as soon as its value changes.
func (f *Form) Set(field, value string) error {
	var old string
	switch field {
	case "title":
		old, f.payload.Title = f.payload.Title, value
	case "description":
		old, f.payload.Description = f.payload.Description, value
	case "event_type":
		old = string(f.payload.EventType)
		f.payload.EventType = Type(value)
	case "start_date":
		old, f.payload.StartDate = f.payload.StartDate, value
	case "end_date":
		old, f.payload.EndDate = f.payload.EndDate, value
	case "location":
		old, f.payload.Location = f.payload.Location, value
	case "is_all_day":
		allDay, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "is_all_day %q", value)
		}
		if allDay != f.payload.IsAllDay {
			delete(f.errors, field)
		}
		f.payload.IsAllDay = allDay
		return nil
	default:
		return fmt.Errorf("unknown event field %q", field)
	}
	if old != value {
		delete(f.errors, field)
	}
	return nil
}

func (f *Form) Payload() NewEvent { return f.payload }

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return errs
}

func (f *Form) SubmitError() string { return f.submitErr }

// Submit validates the payload and, if valid, hands it to save.
// On validation failure save is not called and the field errors are kept on the form.
func (f *Form) Submit(ctx context.Context, save SaveFunc) error {
	f.submitErr = ""
	res := Validate(f.payload)
	if !res.Valid {
		f.errors = res.FieldErrors
		return res.Err()
	}
	f.errors = map[string]string{}
	if err := save(ctx, f.payload); err != nil {
		f.submitErr = SubmitErrorText
		return errors.Wrap(err, "saving event")
	}
	return nil
}
