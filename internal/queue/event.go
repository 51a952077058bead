// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation passes the
// seating engine's checks and is persisted.  It carries enough information
// for downstream consumers to log or notify without querying the database.
type ReservationConfirmedEvent struct {
	ReservationID    uint64   `json:"reservation_id"`
	UserID           uint64   `json:"user_id"`
	ShowingID        uint64   `json:"showing_id"`
	ScreenID         uint64   `json:"screen_id"`
	MovieTitle       string   `json:"movie_title"`
	StartsAt         string   `json:"starts_at"`
	ReservationType  string   `json:"reservation_type"`
	TicketCount      uint32   `json:"ticket_count"`
	SeatLabels       []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
