package utils // token creation and verification for the session credential

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialTTL is how long an issued session credential stays valid.
// There is no revocation list; a credential outlives server-side changes
// (including password updates) until this window elapses.
const CredentialTTL = 30 * 24 * time.Hour

// Sentinel verification failures. Handlers translate both into 401 but
// with distinct messages.
var (
	ErrExpired   = errors.New("credential expired")
	ErrMalformed = errors.New("credential malformed")
)

// Identity is the subset of user state carried inside a credential and
// attached to the request context after verification.
type Identity struct {
	UserID uint64
	Email  string
	Role   string
}

// IssueToken signs an HS256 credential embedding the user's id, email and
// role. ttl is a parameter so tests can issue short-lived tokens; callers
// in the request path pass CredentialTTL.
func IssueToken(secret string, id uint64, email, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken parses a raw credential and returns the identity it encodes.
// Expired credentials yield ErrExpired; anything else that fails to parse
// or validate yields ErrMalformed.
func VerifyToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrMalformed
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Identity{}, ErrMalformed
	}

	// Numeric claims come back as float64 after JSON decoding.
	idF, ok := claims["id"].(float64)
	if !ok {
		return Identity{}, ErrMalformed
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Identity{UserID: uint64(idF), Email: email, Role: role}, nil
}
