// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingKind distinguishes the two booking flows on the wire.
const (
	KindFlight = "flight"
	KindHotel  = "hotel"
)

// BookingCreatedEvent is published after a booking and its payment commit
// together. It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type BookingCreatedEvent struct {
	Kind       string  `json:"kind"` // "flight" or "hotel"
	BookingID  uint64  `json:"booking_id"`
	PaymentID  uint64  `json:"payment_id"`
	UserID     uint64  `json:"user_id"`
	ResourceID uint64  `json:"resource_id"` // schedule or hotel id
	TotalPrice float64 `json:"total_price"`
	Bank       string  `json:"bank"`
	CreatedAt  string  `json:"created_at"`
}
