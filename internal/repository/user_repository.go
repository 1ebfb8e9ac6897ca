package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rakhadjo/nusatrip/internal/model"
)

// UserRepo provides persistence for application users.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = "id, name, email, phone, password, role, image, gender, birthday, country, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role,
		&u.Image, &u.Gender, &u.Birthday, &u.Country, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// isDuplicate reports whether err is a MySQL unique-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// Create inserts a user and populates the generated ID. The password must
// already be hashed by the caller.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, password, role) VALUES (?,?,?,?,?)",
		u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.Phone, u.Password, u.Role)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// GetByEmail fetches a user by normalized email. ErrNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email = ? LIMIT 1", email))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id. ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns every user.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UserPatch holds optional field updates; nil fields are left untouched.
// Password, when set, must already be hashed.
type UserPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Role     *string
	Gender   *string
	Birthday *time.Time
	Country  *string
	Image    *string
}

// Update applies a field patch to one user and returns the updated row.
func (r *UserRepo) Update(ctx context.Context, id uint64, p UserPatch) (model.User, error) {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", strings.ToLower(strings.TrimSpace(*p.Email)))
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.Password != nil {
		add("password", *p.Password)
	}
	if p.Role != nil {
		add("role", *p.Role)
	}
	if p.Gender != nil {
		add("gender", *p.Gender)
	}
	if p.Birthday != nil {
		add("birthday", *p.Birthday)
	}
	if p.Country != nil {
		add("country", *p.Country)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	if len(set) > 0 {
		args = append(args, id)
		res, err := r.db.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
		if err != nil {
			if isDuplicate(err) {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Zero affected rows can also mean identical values; confirm
			// existence explicitly.
			if _, err := r.GetByID(ctx, id); err != nil {
				return model.User{}, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user by id. ErrNotFound when nothing was deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
