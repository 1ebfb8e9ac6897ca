package repository

import (
	"context"
	"database/sql"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// HotelBookingRepo provides persistence for hotel bookings and their
// one-to-one payments, created together in a single transaction.
type HotelBookingRepo struct{ db *sql.DB }

// NewHotelBookingRepo returns a HotelBookingRepo bound to the given database.
func NewHotelBookingRepo(db *sql.DB) *HotelBookingRepo { return &HotelBookingRepo{db: db} }

// HotelBookingDetail is a booking joined with its user, hotel and payment.
type HotelBookingDetail struct {
	model.HotelBooking
	User    *model.User         `json:"user,omitempty"`
	Hotel   *model.Hotel        `json:"hotel,omitempty"`
	Payment *model.HotelPayment `json:"payment,omitempty"`
}

// CreateWithPayment inserts the booking and its payment in one
// transaction; on any failure both inserts roll back. The payment status
// is forced to pending.
func (r *HotelBookingRepo) CreateWithPayment(ctx context.Context, b *model.HotelBooking, p *model.HotelPayment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO booking_hotel (user_id, hotel_id, check_in_date, check_out_date, rooms, total_price)
		VALUES (?,?,?,?,?,?)`,
		b.UserID, b.HotelID, b.CheckInDate, b.CheckOutDate, b.Rooms, b.TotalPrice)
	if err != nil {
		if isForeignKey(err) {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	p.BookingID = b.ID
	p.Status = model.PaymentPending
	res, err = tx.ExecContext(ctx,
		"INSERT INTO payment_hotel (booking_id, receipt, bank, status) VALUES (?,?,?,?)",
		p.BookingID, p.Receipt, p.Bank, p.Status)
	if err != nil {
		return err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	if err := tx.QueryRowContext(ctx,
		"SELECT booking_date FROM booking_hotel WHERE id = ?", b.ID).
		Scan(&b.BookingDate); err != nil {
		return err
	}

	return tx.Commit()
}

const hotelBookingSelect = `SELECT
		b.id, b.user_id, b.hotel_id, b.check_in_date, b.check_out_date,
		b.rooms, b.total_price, b.booking_date,
		u.id, u.name, u.email, u.phone, u.role,
		h.id, h.name, h.location, h.price, h.rating, h.image,
		pay.id, pay.receipt, pay.bank, pay.status
	FROM booking_hotel b
	JOIN users u ON u.id = b.user_id
	JOIN hotels h ON h.id = b.hotel_id
	LEFT JOIN payment_hotel pay ON pay.booking_id = b.id`

func scanHotelBookingDetail(rows *sql.Rows) (HotelBookingDetail, error) {
	var d HotelBookingDetail
	var u model.User
	var h model.Hotel
	var payID sql.NullInt64
	var payReceipt, payBank, payStatus sql.NullString

	err := rows.Scan(
		&d.ID, &d.UserID, &d.HotelID, &d.CheckInDate, &d.CheckOutDate,
		&d.Rooms, &d.TotalPrice, &d.BookingDate,
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role,
		&h.ID, &h.Name, &h.Location, &h.Price, &h.Rating, &h.Image,
		&payID, &payReceipt, &payBank, &payStatus)
	if err != nil {
		return d, err
	}
	d.User = &u
	d.Hotel = &h
	if payID.Valid {
		d.Payment = &model.HotelPayment{
			ID:        uint64(payID.Int64),
			BookingID: d.ID,
			Receipt:   payReceipt.String,
			Bank:      payBank.String,
			Status:    payStatus.String,
		}
	}
	return d, nil
}

func (r *HotelBookingRepo) queryDetails(ctx context.Context, suffix string, args ...any) ([]HotelBookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, hotelBookingSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HotelBookingDetail{}
	for rows.Next() {
		d, err := scanHotelBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAll returns every hotel booking with joined detail.
func (r *HotelBookingRepo) ListAll(ctx context.Context) ([]HotelBookingDetail, error) {
	return r.queryDetails(ctx, " ORDER BY b.id")
}

// ListByUser returns the bookings belonging to one user.
func (r *HotelBookingRepo) ListByUser(ctx context.Context, userID uint64) ([]HotelBookingDetail, error) {
	return r.queryDetails(ctx, " WHERE b.user_id = ? ORDER BY b.id", userID)
}

// GetByIDAndUser returns one booking only when it belongs to the given
// user; a booking owned by someone else reads as ErrNotFound.
func (r *HotelBookingRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (HotelBookingDetail, error) {
	ds, err := r.queryDetails(ctx, " WHERE b.id = ? AND b.user_id = ? LIMIT 1", id, userID)
	if err != nil {
		return HotelBookingDetail{}, err
	}
	if len(ds) == 0 {
		return HotelBookingDetail{}, ErrNotFound
	}
	return ds[0], nil
}
