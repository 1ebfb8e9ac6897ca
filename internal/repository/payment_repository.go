package repository

import (
	"context"
	"database/sql"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// FlightPaymentRepo serves the payment-review endpoints for flight
// bookings. Payment rows themselves are created transactionally by
// FlightBookingRepo.CreateWithPayment.
type FlightPaymentRepo struct{ db *sql.DB }

// NewFlightPaymentRepo returns a FlightPaymentRepo bound to the given database.
func NewFlightPaymentRepo(db *sql.DB) *FlightPaymentRepo { return &FlightPaymentRepo{db: db} }

// FlightPaymentDetail is a payment joined with its booking.
type FlightPaymentDetail struct {
	model.FlightPayment
	Booking *model.FlightBooking `json:"booking,omitempty"`
}

// List returns every flight payment with its booking.
func (r *FlightPaymentRepo) List(ctx context.Context) ([]FlightPaymentDetail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			p.id, p.booking_id, p.receipt, p.bank, p.status,
			b.id, b.user_id, b.jadwal_id, b.name, b.gender, b.country,
			b.birthday, b.total_price, b.booking_date
		FROM payment_pesawat p
		JOIN booking_pesawat b ON b.id = p.booking_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FlightPaymentDetail{}
	for rows.Next() {
		var d FlightPaymentDetail
		var b model.FlightBooking
		if err := rows.Scan(&d.ID, &d.BookingID, &d.Receipt, &d.Bank, &d.Status,
			&b.ID, &b.UserID, &b.JadwalID, &b.Name, &b.Gender, &b.Country,
			&b.Birthday, &b.TotalPrice, &b.BookingDate); err != nil {
			return nil, err
		}
		d.Booking = &b
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus replaces the status of the payment belonging to one
// booking; the previous status is not retained. ErrPaymentNotFound when no
// payment exists for the booking.
func (r *FlightPaymentRepo) UpdateStatus(ctx context.Context, bookingID uint64, status string) (model.FlightPayment, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE payment_pesawat SET status = ? WHERE booking_id = ?", status, bookingID); err != nil {
		return model.FlightPayment{}, err
	}
	var p model.FlightPayment
	err := r.db.QueryRowContext(ctx,
		"SELECT id, booking_id, receipt, bank, status FROM payment_pesawat WHERE booking_id = ? LIMIT 1",
		bookingID).Scan(&p.ID, &p.BookingID, &p.Receipt, &p.Bank, &p.Status)
	if err == sql.ErrNoRows {
		return model.FlightPayment{}, ErrPaymentNotFound
	}
	return p, err
}

// HotelPaymentRepo serves the payment-review endpoints for hotel bookings.
type HotelPaymentRepo struct{ db *sql.DB }

// NewHotelPaymentRepo returns a HotelPaymentRepo bound to the given database.
func NewHotelPaymentRepo(db *sql.DB) *HotelPaymentRepo { return &HotelPaymentRepo{db: db} }

// HotelPaymentDetail is a payment joined with its booking.
type HotelPaymentDetail struct {
	model.HotelPayment
	Booking *model.HotelBooking `json:"booking,omitempty"`
}

// List returns every hotel payment with its booking.
func (r *HotelPaymentRepo) List(ctx context.Context) ([]HotelPaymentDetail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			p.id, p.booking_id, p.receipt, p.bank, p.status,
			b.id, b.user_id, b.hotel_id, b.check_in_date, b.check_out_date,
			b.rooms, b.total_price, b.booking_date
		FROM payment_hotel p
		JOIN booking_hotel b ON b.id = p.booking_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HotelPaymentDetail{}
	for rows.Next() {
		var d HotelPaymentDetail
		var b model.HotelBooking
		if err := rows.Scan(&d.ID, &d.BookingID, &d.Receipt, &d.Bank, &d.Status,
			&b.ID, &b.UserID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
			&b.Rooms, &b.TotalPrice, &b.BookingDate); err != nil {
			return nil, err
		}
		d.Booking = &b
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus replaces the status of the payment belonging to one
// booking. ErrPaymentNotFound when no payment exists for the booking.
func (r *HotelPaymentRepo) UpdateStatus(ctx context.Context, bookingID uint64, status string) (model.HotelPayment, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE payment_hotel SET status = ? WHERE booking_id = ?", status, bookingID); err != nil {
		return model.HotelPayment{}, err
	}
	var p model.HotelPayment
	err := r.db.QueryRowContext(ctx,
		"SELECT id, booking_id, receipt, bank, status FROM payment_hotel WHERE booking_id = ? LIMIT 1",
		bookingID).Scan(&p.ID, &p.BookingID, &p.Receipt, &p.Bank, &p.Status)
	if err == sql.ErrNoRows {
		return model.HotelPayment{}, ErrPaymentNotFound
	}
	return p, err
}
