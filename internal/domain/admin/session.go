package admin

import "time"

// Session is an issued admin bearer token. Token is the signed form handed to the
// client; TokenID identifies it for revocation.
type Session struct {
	Token     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	TokenID   string
	ExpiresAt time.Time
}
