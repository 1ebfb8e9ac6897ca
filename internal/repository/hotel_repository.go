package repository

import (
	"context"
	"database/sql"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// HotelRepo provides persistence for the hotel catalog.
type HotelRepo struct{ db *sql.DB }

// NewHotelRepo returns a HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelCols = "id, name, location, price, rating, image"

// List returns every hotel.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hotelCols+" FROM hotels ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Hotel{}
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Price, &h.Rating, &h.Image); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetByID fetches one hotel. ErrNotFound when absent.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	var h model.Hotel
	err := r.db.QueryRowContext(ctx,
		"SELECT "+hotelCols+" FROM hotels WHERE id = ? LIMIT 1", id).
		Scan(&h.ID, &h.Name, &h.Location, &h.Price, &h.Rating, &h.Image)
	if err == sql.ErrNoRows {
		return model.Hotel{}, ErrNotFound
	}
	return h, err
}

// Create inserts a hotel and populates the generated ID.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO hotels (name, location, price, rating, image) VALUES (?,?,?,?,?)",
		h.Name, h.Location, h.Price, h.Rating, h.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// Update replaces a hotel's fields; image is only replaced when non-empty.
func (r *HotelRepo) Update(ctx context.Context, id uint64, h model.Hotel) (model.Hotel, error) {
	var err error
	if h.Image != "" {
		_, err = r.db.ExecContext(ctx,
			"UPDATE hotels SET name = ?, location = ?, price = ?, rating = ?, image = ? WHERE id = ?",
			h.Name, h.Location, h.Price, h.Rating, h.Image, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			"UPDATE hotels SET name = ?, location = ?, price = ?, rating = ? WHERE id = ?",
			h.Name, h.Location, h.Price, h.Rating, id)
	}
	if err != nil {
		return model.Hotel{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a hotel by id. ErrNotFound when nothing was deleted.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
