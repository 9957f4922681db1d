package event

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-dashboard/core"
)

var (
	endAfterStartTag  = "end_after_start"
	endAfterStartText = "End date must be on or after start date"
)

// register custom validators
func init() {
	core.Validate.RegisterStructValidation(newEventStructValidation, NewEvent{})
	core.RegisterCustomTranslation(endAfterStartTag, endAfterStartText)
}

// ValidationResult is the outcome of validating an event form payload.
// FieldErrors is keyed by JSON field name.
type ValidationResult struct {
	Valid       bool
	FieldErrors map[string]string
}

// Err returns the result as a *core.ValidationError, or nil if valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	flds := make([]core.FieldError, 0, len(r.FieldErrors))
	for _, fld := range []string{"title", "event_type", "start_date", "end_date"} {
		if msg, ok := r.FieldErrors[fld]; ok {
			flds = append(flds, core.FieldError{Field: fld, Error: msg})
		}
	}
	return core.NewValidationError(nil, flds...)
}

// Validate checks an event payload. Every rule is evaluated, so all the field errors are reported at once.
// The payload is not modified.
func Validate(ne NewEvent) ValidationResult {
	ne.clean()
	err := core.Validate.Struct(ne)
	if err == nil {
		return ValidationResult{Valid: true, FieldErrors: map[string]string{}}
	}
	flds := core.FieldErrors(err)
	if flds == nil {
		flds = map[string]string{"": err.Error()}
	}
	return ValidationResult{Valid: false, FieldErrors: flds}
}

// ValidateUpdate applies the NewEvent rules to an update payload.
func ValidateUpdate(ue UpdateEvent) ValidationResult {
	return Validate(NewEvent(ue))
}

// Custom Validators

// newEventStructValidation does NewEvent's struct level validation
func newEventStructValidation(sl validator.StructLevel) {
	if ne, ok := sl.Current().Interface().(NewEvent); ok {
		// YYYY-MM-DD strings sort in date order
		if core.IsISODate(ne.StartDate) && core.IsISODate(ne.EndDate) && ne.EndDate < ne.StartDate {
			sl.ReportError(ne.EndDate, "end_date", "EndDate", endAfterStartTag, "")
		}
	}
}
