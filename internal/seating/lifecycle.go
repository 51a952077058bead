package seating

import (
	"fmt"
	"strings"
	"time"
)

// Lifecycle timestamp field names as they appear in API payloads.  Handlers
// surface validation failures against these paths so the client can attach
// the message to the exact form field.
const (
	FieldDatePaid      = "date_paid"
	FieldDateCancelled = "date_cancelled"
	FieldDateRefunded  = "date_refunded"
	FieldDateExpired   = "date_expired"
)

// FieldError is a validation failure attributed to one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult collects field-level failures.  An empty result means
// the reservation passed.
type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

// Valid reports whether the reservation passed validation.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// requiredTimestamp is the single source of truth for which lifecycle
// timestamp a status demands.  Adding a status with a timestamp requirement
// means adding one case here; every validation call site picks it up.
// Statuses outside the switch require nothing.
func requiredTimestamp(r Reservation) (field string, value *time.Time, required bool) {
	switch r.Status {
	case StatusPaid:
		return FieldDatePaid, r.DatePaid, true
	case StatusCancelled:
		return FieldDateCancelled, r.DateCancelled, true
	case StatusRefunded:
		return FieldDateRefunded, r.DateRefunded, true
	case StatusExpired:
		return FieldDateExpired, r.DateExpired, true
	}
	return "", nil, false
}

// ValidateLifecycle checks that the timestamp required by the reservation's
// current status is present.  A reservation whose status carries no
// timestamp requirement always passes, whatever timestamps it holds.
func ValidateLifecycle(r Reservation) ValidationResult {
	field, value, required := requiredTimestamp(r)
	if !required || value != nil {
		return ValidationResult{}
	}
	return ValidationResult{Errors: []FieldError{{
		Field:   field,
		Message: fmt.Sprintf("Required for %s reservations.", strings.ToLower(string(r.Status))),
	}}}
}
