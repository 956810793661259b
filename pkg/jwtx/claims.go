package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Authentication method references carried in the amr claim.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
	AMRMFA      = "mfa"
)

// SessionClaims are the claims of a browser session token. The session id
// links the token to a revocable server-side record.
type SessionClaims struct {
	jwt.RegisteredClaims

	SID        string   `json:"sid"`
	AMR        []string `json:"amr,omitempty"`
	Email      string   `json:"email,omitempty"`
	Persistent bool     `json:"persistent,omitempty"`
}

// NewSessionClaims builds claims for subject valid from now until expiresAt.
func NewSessionClaims(issuer, subject, sid, email string, amr []string, persistent bool, now, expiresAt time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        sid,
		},
		SID:        sid,
		AMR:        amr,
		Email:      email,
		Persistent: persistent,
	}
}

// HasAMR reports whether method was used to authenticate the session.
func (c SessionClaims) HasAMR(method string) bool {
	return slices.Contains(c.AMR, method)
}
