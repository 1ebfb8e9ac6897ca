package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// ScheduleRepo provides persistence for flight schedules (jadwal
// penerbangan). Listing queries join the owning airline so responses can
// embed it.
type ScheduleRepo struct{ db *sql.DB }

// NewScheduleRepo returns a ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// ScheduleSearch carries the optional filters of GET /jadwal-penerbangan.
// String filters match as case-insensitive substrings; FlightDate matches
// the whole calendar day inclusively.
type ScheduleSearch struct {
	Origin      string
	Destination string
	Class       string
	FlightDate  *time.Time
}

const scheduleSelect = `SELECT
		j.id, j.pesawat_id, j.flight_date, j.departure_time, j.arrival_time,
		j.origin, j.destination, j.class, j.price,
		p.id, p.airline, p.logo
	FROM jadwal_penerbangan j
	JOIN pesawat p ON p.id = j.pesawat_id`

func scanScheduleRow(rows *sql.Rows) (model.FlightSchedule, error) {
	var s model.FlightSchedule
	var p model.Pesawat
	err := rows.Scan(&s.ID, &s.PesawatID, &s.FlightDate, &s.DepartureTime, &s.ArrivalTime,
		&s.Origin, &s.Destination, &s.Class, &s.Price,
		&p.ID, &p.Airline, &p.Logo)
	if err != nil {
		return s, err
	}
	s.Pesawat = &p
	return s, nil
}

// Search returns schedules matching the given filters; an empty filter set
// returns everything.
func (r *ScheduleRepo) Search(ctx context.Context, q ScheduleSearch) ([]model.FlightSchedule, error) {
	where := []string{}
	args := []any{}

	if q.Origin != "" {
		where = append(where, "LOWER(j.origin) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Origin)+"%")
	}
	if q.Destination != "" {
		where = append(where, "LOWER(j.destination) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Destination)+"%")
	}
	if q.Class != "" {
		where = append(where, "LOWER(j.class) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Class)+"%")
	}
	if q.FlightDate != nil {
		dayStart := time.Date(q.FlightDate.Year(), q.FlightDate.Month(), q.FlightDate.Day(), 0, 0, 0, 0, time.UTC)
		where = append(where, "j.flight_date >= ? AND j.flight_date < ?")
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}

	query := scheduleSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY j.flight_date, j.departure_time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FlightSchedule{}
	for rows.Next() {
		s, err := scanScheduleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one schedule with its airline. ErrNotFound when absent.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (model.FlightSchedule, error) {
	rows, err := r.db.QueryContext(ctx, scheduleSelect+" WHERE j.id = ? LIMIT 1", id)
	if err != nil {
		return model.FlightSchedule{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.FlightSchedule{}, err
		}
		return model.FlightSchedule{}, ErrNotFound
	}
	return scanScheduleRow(rows)
}

// Create inserts a schedule and populates the generated ID. The referenced
// airline must exist; a failed foreign key surfaces as ErrNotFound.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.FlightSchedule) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO jadwal_penerbangan
			(pesawat_id, flight_date, departure_time, arrival_time, origin, destination, class, price)
		VALUES (?,?,?,?,?,?,?,?)`,
		s.PesawatID, s.FlightDate, s.DepartureTime, s.ArrivalTime,
		s.Origin, s.Destination, s.Class, s.Price)
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
	s.ID = uint64(id)
	return nil
}

// Update replaces every mutable field of a schedule.
func (r *ScheduleRepo) Update(ctx context.Context, id uint64, s model.FlightSchedule) (model.FlightSchedule, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jadwal_penerbangan SET
			pesawat_id = ?, flight_date = ?, departure_time = ?, arrival_time = ?,
			origin = ?, destination = ?, class = ?, price = ?
		WHERE id = ?`,
		s.PesawatID, s.FlightDate, s.DepartureTime, s.ArrivalTime,
		s.Origin, s.Destination, s.Class, s.Price, id)
	if err != nil {
		if isForeignKey(err) {
			return model.FlightSchedule{}, ErrNotFound
		}
		return model.FlightSchedule{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a schedule by id. ErrNotFound when nothing was deleted.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM jadwal_penerbangan WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// isForeignKey reports whether err is a MySQL foreign-key violation (1452).
func isForeignKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
