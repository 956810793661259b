package domain

import "time"

// Session is the server-side record behind a session cookie.
type Session struct {
	ID         string
	UserID     string
	Persistent bool
	AMR        []string
	ExpiresAt  time.Time
	Revoked    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// IssuedSession is a freshly signed session token and its cookie metadata.
type IssuedSession struct {
	Token      string
	SessionID  string
	ExpiresAt  time.Time
	Persistent bool
}
