package repository

import (
	"context"
	"database/sql"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// PesawatRepo provides persistence for airline entries.
type PesawatRepo struct{ db *sql.DB }

// NewPesawatRepo returns a PesawatRepo bound to the given database.
func NewPesawatRepo(db *sql.DB) *PesawatRepo { return &PesawatRepo{db: db} }

// List returns every airline.
func (r *PesawatRepo) List(ctx context.Context) ([]model.Pesawat, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, airline, logo FROM pesawat ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Pesawat{}
	for rows.Next() {
		var p model.Pesawat
		if err := rows.Scan(&p.ID, &p.Airline, &p.Logo); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches one airline. ErrNotFound when absent.
func (r *PesawatRepo) GetByID(ctx context.Context, id uint64) (model.Pesawat, error) {
	var p model.Pesawat
	err := r.db.QueryRowContext(ctx,
		"SELECT id, airline, logo FROM pesawat WHERE id = ? LIMIT 1", id).
		Scan(&p.ID, &p.Airline, &p.Logo)
	if err == sql.ErrNoRows {
		return model.Pesawat{}, ErrNotFound
	}
	return p, err
}

// Create inserts an airline and populates the generated ID.
func (r *PesawatRepo) Create(ctx context.Context, p *model.Pesawat) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO pesawat (airline, logo) VALUES (?,?)", p.Airline, p.Logo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update replaces the airline name and, when logo is non-empty, the stored
// logo reference.
func (r *PesawatRepo) Update(ctx context.Context, id uint64, airline, logo string) (model.Pesawat, error) {
	var err error
	if logo != "" {
		_, err = r.db.ExecContext(ctx,
			"UPDATE pesawat SET airline = ?, logo = ? WHERE id = ?", airline, logo, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			"UPDATE pesawat SET airline = ? WHERE id = ?", airline, id)
	}
	if err != nil {
		return model.Pesawat{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an airline by id. ErrNotFound when nothing was deleted.
func (r *PesawatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pesawat WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
