package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued to authenticated users.
// The server trusts the ID claim as the caller's identity on every
// authenticated request and on WebSocket connection establishment.
type Payload struct {
	// StandardClaims embeds Exp, Iat, and Iss, which drive validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the user's account identifier (UUID).
	ID string `json:"id"`

	// FullName is the user's display name at token issue time. It is a
	// convenience for clients; the database copy is authoritative.
	FullName string `json:"full_name,omitempty"`
}
