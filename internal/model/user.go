package model

import "time"

// User mirrors the `users` table. The password column only ever holds a
// bcrypt hash; the json "-" tag keeps it out of every response body.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – display name.
//	Email     – unique email address.
//	Phone     – contact phone number.
//	Password  – bcrypt hash of the password.
//	Role      – "admin" or "user".
//	Image     – stored avatar file name (nullable).
//	Gender    – optional gender string (nullable).
//	Birthday  – optional date of birth (nullable).
//	Country   – optional country name (nullable).
type User struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Password  string     `json:"-"`
	Role      string     `json:"role"`
	Image     *string    `json:"image"`
	Gender    *string    `json:"gender"`
	Birthday  *time.Time `json:"birthday"`
	Country   *string    `json:"country"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Roles stored in users.role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
