package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// FlightBookingRepo provides persistence for flight bookings and their
// one-to-one payments. Booking and payment creation happen inside a single
// transaction so a booking can never exist without its payment row.
type FlightBookingRepo struct{ db *sql.DB }

// NewFlightBookingRepo returns a FlightBookingRepo bound to the given database.
func NewFlightBookingRepo(db *sql.DB) *FlightBookingRepo { return &FlightBookingRepo{db: db} }

// FlightBookingDetail is a booking joined with its user, schedule (with
// airline) and payment, mirroring what the listing endpoints return.
type FlightBookingDetail struct {
	model.FlightBooking
	User    *model.User           `json:"user,omitempty"`
	Jadwal  *model.FlightSchedule `json:"jadwal,omitempty"`
	Payment *model.FlightPayment  `json:"payment,omitempty"`
}

// CreateWithPayment inserts the booking and its payment in one
// transaction. On any failure both inserts roll back. The payment's
// BookingID and both generated IDs are populated on success; the payment
// status is forced to pending.
func (r *FlightBookingRepo) CreateWithPayment(ctx context.Context, b *model.FlightBooking, p *model.FlightPayment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO booking_pesawat (user_id, jadwal_id, name, gender, country, birthday, total_price)
		VALUES (?,?,?,?,?,?,?)`,
		b.UserID, b.JadwalID, b.Name, b.Gender, b.Country, b.Birthday, b.TotalPrice)
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
		"INSERT INTO payment_pesawat (booking_id, receipt, bank, status) VALUES (?,?,?,?)",
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
		"SELECT booking_date FROM booking_pesawat WHERE id = ?", b.ID).
		Scan(&b.BookingDate); err != nil {
		return err
	}

	return tx.Commit()
}

const flightBookingSelect = `SELECT
		b.id, b.user_id, b.jadwal_id, b.name, b.gender, b.country, b.birthday,
		b.total_price, b.booking_date,
		u.id, u.name, u.email, u.phone, u.role,
		j.id, j.pesawat_id, j.flight_date, j.departure_time, j.arrival_time,
		j.origin, j.destination, j.class, j.price,
		p.id, p.airline, p.logo,
		pay.id, pay.receipt, pay.bank, pay.status
	FROM booking_pesawat b
	JOIN users u ON u.id = b.user_id
	JOIN jadwal_penerbangan j ON j.id = b.jadwal_id
	JOIN pesawat p ON p.id = j.pesawat_id
	LEFT JOIN payment_pesawat pay ON pay.booking_id = b.id`

func scanFlightBookingDetail(rows *sql.Rows) (FlightBookingDetail, error) {
	var d FlightBookingDetail
	var u model.User
	var j model.FlightSchedule
	var pes model.Pesawat
	var payID sql.NullInt64
	var payReceipt, payBank, payStatus sql.NullString

	err := rows.Scan(
		&d.ID, &d.UserID, &d.JadwalID, &d.Name, &d.Gender, &d.Country, &d.Birthday,
		&d.TotalPrice, &d.BookingDate,
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role,
		&j.ID, &j.PesawatID, &j.FlightDate, &j.DepartureTime, &j.ArrivalTime,
		&j.Origin, &j.Destination, &j.Class, &j.Price,
		&pes.ID, &pes.Airline, &pes.Logo,
		&payID, &payReceipt, &payBank, &payStatus)
	if err != nil {
		return d, err
	}
	j.Pesawat = &pes
	d.User = &u
	d.Jadwal = &j
	if payID.Valid {
		d.Payment = &model.FlightPayment{
			ID:        uint64(payID.Int64),
			BookingID: d.ID,
			Receipt:   payReceipt.String,
			Bank:      payBank.String,
			Status:    payStatus.String,
		}
	}
	return d, nil
}

func (r *FlightBookingRepo) queryDetails(ctx context.Context, suffix string, args ...any) ([]FlightBookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, flightBookingSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FlightBookingDetail{}
	for rows.Next() {
		d, err := scanFlightBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAll returns every flight booking with joined detail.
func (r *FlightBookingRepo) ListAll(ctx context.Context) ([]FlightBookingDetail, error) {
	return r.queryDetails(ctx, " ORDER BY b.id")
}

// ListByUser returns the bookings belonging to one user.
func (r *FlightBookingRepo) ListByUser(ctx context.Context, userID uint64) ([]FlightBookingDetail, error) {
	return r.queryDetails(ctx, " WHERE b.user_id = ? ORDER BY b.id", userID)
}

// GetByIDAndUser returns one booking only when it belongs to the given
// user; a booking owned by someone else reads as ErrNotFound.
func (r *FlightBookingRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (FlightBookingDetail, error) {
	ds, err := r.queryDetails(ctx, " WHERE b.id = ? AND b.user_id = ? LIMIT 1", id, userID)
	if err != nil {
		return FlightBookingDetail{}, err
	}
	if len(ds) == 0 {
		return FlightBookingDetail{}, ErrNotFound
	}
	return ds[0], nil
}

// FlightBookingPatch holds the mutable booking fields of the admin update
// endpoint; nil fields stay untouched.
type FlightBookingPatch struct {
	JadwalID *uint64
	Name     *string
	Gender   *string
	Country  *string
}

// Update applies a patch to one booking. The price snapshot is
// intentionally not recomputed when the schedule reference changes.
func (r *FlightBookingRepo) Update(ctx context.Context, id uint64, p FlightBookingPatch) error {
	set := []string{}
	args := []any{}
	if p.JadwalID != nil {
		set = append(set, "jadwal_id = ?")
		args = append(args, *p.JadwalID)
	}
	if p.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Gender != nil {
		set = append(set, "gender = ?")
		args = append(args, *p.Gender)
	}
	if p.Country != nil {
		set = append(set, "country = ?")
		args = append(args, *p.Country)
	}
	if len(set) == 0 {
		return r.confirmExists(ctx, id)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE booking_pesawat SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isForeignKey(err) {
			return ErrNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero affected rows can also mean identical values; confirm
		// existence explicitly.
		return r.confirmExists(ctx, id)
	}
	return nil
}

// confirmExists reports ErrNotFound when no booking row has the given id.
func (r *FlightBookingRepo) confirmExists(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM booking_pesawat WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// Delete removes a booking by id. ErrNotFound when nothing was deleted.
func (r *FlightBookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM booking_pesawat WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
