package domain

// LoginResult is the outcome of a password login. Exactly one of Session and
// Challenge is set.
type LoginResult struct {
	User      *User
	Session   *IssuedSession
	Challenge *Challenge
}

// Challenged reports whether the login paused for a second factor.
func (r LoginResult) Challenged() bool { return r.Challenge != nil }

// Challenge describes a pending email code challenge.
type Challenge struct {
	Email string
}

// SignedIn is the outcome of a completed sign-in.
type SignedIn struct {
	User    *User
	Session *IssuedSession
}
