package domain

import "time"

// AdminUser is a back-office operator account. Passwords are stored as
// argon2id hashes.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminSession is an opaque server-side session row. The token is the only
// credential the client holds; there are no scopes beyond "valid admin".
type AdminSession struct {
	Token     string    `json:"token"`
	AdminID   int64     `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *AdminSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
