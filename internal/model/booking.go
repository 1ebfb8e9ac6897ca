package model

import "time"

// FlightBooking mirrors the `booking_pesawat` table. TotalPrice is a
// snapshot of the schedule price taken at booking time and is never
// recomputed afterwards.
type FlightBooking struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	JadwalID    uint64    `json:"jadwalId"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	Country     string    `json:"country"`
	Birthday    time.Time `json:"birthday"`
	TotalPrice  float64   `json:"totalPrice"`
	BookingDate time.Time `json:"bookingDate"`
}

// FlightPayment mirrors the `payment_pesawat` table. Exactly one payment
// exists per booking (booking_id is unique). Receipt holds the stored
// file name of the uploaded proof image.
type FlightPayment struct {
	ID        uint64 `json:"id"`
	BookingID uint64 `json:"bookingId"`
	Receipt   string `json:"receipt"`
	Bank      string `json:"bank"`
	Status    string `json:"status"`
}

// HotelBooking mirrors the `booking_hotel` table. TotalPrice is accepted
// from the client as submitted; the server does not derive it from the
// hotel rate.
type HotelBooking struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"userId"`
	HotelID      uint64    `json:"hotelId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Rooms        uint32    `json:"rooms"`
	TotalPrice   float64   `json:"totalPrice"`
	BookingDate  time.Time `json:"bookingDate"`
}

// HotelPayment mirrors the `payment_hotel` table, one-to-one with its
// booking.
type HotelPayment struct {
	ID        uint64 `json:"id"`
	BookingID uint64 `json:"bookingId"`
	Receipt   string `json:"receipt"`
	Bank      string `json:"bank"`
	Status    string `json:"status"`
}

// Payment review states. Any state may replace any other; the last write
// wins and no history is kept.
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// ValidPaymentStatus reports whether s belongs to the closed status set.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentApproved || s == PaymentRejected
}
