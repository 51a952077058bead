package seating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLifecycleRequiredTimestamps(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		status ReservationStatus
		field  string
		fill   func(r *Reservation)
	}{
		{StatusPaid, FieldDatePaid, func(r *Reservation) { r.DatePaid = &now }},
		{StatusCancelled, FieldDateCancelled, func(r *Reservation) { r.DateCancelled = &now }},
		{StatusRefunded, FieldDateRefunded, func(r *Reservation) { r.DateRefunded = &now }},
		{StatusExpired, FieldDateExpired, func(r *Reservation) { r.DateExpired = &now }},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			r := Reservation{Status: tc.status}

			// missing timestamp fails, naming the exact field
			res := ValidateLifecycle(r)
			require.False(t, res.Valid())
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tc.field, res.Errors[0].Field)

			// supplying the timestamp makes it pass
			tc.fill(&r)
			assert.True(t, ValidateLifecycle(r).Valid())
		})
	}
}

func TestValidateLifecycleMessageFormat(t *testing.T) {
	res := ValidateLifecycle(Reservation{Status: StatusPaid})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Required for paid reservations.", res.Errors[0].Message)
}

func TestValidateLifecyclePendingNeedsNothing(t *testing.T) {
	assert.True(t, ValidateLifecycle(Reservation{Status: StatusPending}).Valid())

	// stray timestamps on an unconstrained status are not an error
	now := time.Now().UTC()
	r := Reservation{Status: StatusPending, DatePaid: &now, DateExpired: &now}
	assert.True(t, ValidateLifecycle(r).Valid())
}

func TestValidateLifecycleUnknownStatusPasses(t *testing.T) {
	assert.True(t, ValidateLifecycle(Reservation{Status: "ON_HOLD"}).Valid())
}
