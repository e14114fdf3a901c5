package models

import "time"

// RefreshToken is a server-stored session token. Access tokens are stateless
// JWTs; refresh tokens live in the database so they can be rotated and
// revoked on sign-out.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
