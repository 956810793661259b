package authsdk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// ChallengeSeconds is the countdown shown for a freshly issued code.
	ChallengeSeconds = 300
	// ResendCooldownSeconds must elapse after an issuance before resend is offered.
	ResendCooldownSeconds = 60
	// CodeDigits is the length of an email code.
	CodeDigits = 6
)

var (
	ErrIncompleteCode    = errors.New("authsdk: enter the 6-digit code")
	ErrVerifyInFlight    = errors.New("authsdk: verification already in progress")
	ErrResendUnavailable = errors.New("authsdk: resend not available yet")
)

// ChallengeAPI is the part of Client a Challenge needs.
type ChallengeAPI interface {
	VerifyEmail2FA(ctx context.Context, email, code string, rememberMe bool) (*SignInResponse, error)
	ResendEmail2FA(ctx context.Context, email string) (*MessageResponse, error)
}

// Challenge holds the client side of a pending email code challenge: the
// countdown, the digits entered so far, and the in-flight guards for verify
// and resend. It is safe for concurrent use; network calls are made without
// holding the lock.
type Challenge struct {
	api        ChallengeAPI
	email      string
	rememberMe bool

	// OnTick, if set, is called by Run after every tick with the new value.
	OnTick func(timeLeft int)

	mu        sync.Mutex
	timeLeft  int
	input     string
	verifying bool
	resending bool
	user      *UserPayload
}

// NewChallenge starts a challenge for the account a login response named.
// An empty email means there is nothing to complete.
func NewChallenge(api ChallengeAPI, email string, rememberMe bool) (*Challenge, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrNoChallenge
	}
	return &Challenge{
		api:        api,
		email:      email,
		rememberMe: rememberMe,
		timeLeft:   ChallengeSeconds,
	}, nil
}

// Email returns the challenged account.
func (c *Challenge) Email() string { return c.email }

// Tick advances the countdown by one second and returns the time left.
func (c *Challenge) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timeLeft > 0 {
		c.timeLeft--
	}
	return c.timeLeft
}

// Run ticks once a second until ctx is done. The countdown stops at zero
// but Run keeps going, so a resend after expiry counts down again.
func (c *Challenge) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			left := c.Tick()
			if c.OnTick != nil {
				c.OnTick(left)
			}
		}
	}
}

// TimeLeft returns the seconds remaining on the countdown.
func (c *Challenge) TimeLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeLeft
}

// Expired reports whether the countdown has run out. Nothing is refetched
// automatically; the user has to resend.
func (c *Challenge) Expired() bool {
	return c.TimeLeft() == 0
}

// FormatTimeLeft renders the countdown as m:ss.
func (c *Challenge) FormatTimeLeft() string {
	left := c.TimeLeft()
	return fmt.Sprintf("%d:%02d", left/60, left%60)
}

// Input returns the digits entered so far.
func (c *Challenge) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Verifying reports whether a verify call is in flight.
func (c *Challenge) Verifying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifying
}

// User returns the signed-in account once verification succeeded.
func (c *Challenge) User() *UserPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Enter replaces the input with the digits in s, truncated to six. When six
// digits are present and no verify is in flight it submits them, returning
// the verify result. Otherwise it returns nil, nil.
func (c *Challenge) Enter(ctx context.Context, s string) (*SignInResponse, error) {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == CodeDigits {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	c.mu.Lock()
	c.input = b.String()
	ready := len(c.input) == CodeDigits && !c.verifying
	c.mu.Unlock()

	if !ready {
		return nil, nil
	}
	return c.Submit(ctx)
}

// Submit verifies the entered code. On failure the input is cleared unless
// new digits arrived meanwhile, the countdown keeps running and the server's
// message is returned as an *APIError.
func (c *Challenge) Submit(ctx context.Context) (*SignInResponse, error) {
	c.mu.Lock()
	if c.verifying {
		c.mu.Unlock()
		return nil, ErrVerifyInFlight
	}
	if len(c.input) != CodeDigits {
		c.mu.Unlock()
		return nil, ErrIncompleteCode
	}
	code := c.input
	c.verifying = true
	c.mu.Unlock()

	resp, err := c.api.VerifyEmail2FA(ctx, c.email, code, c.rememberMe)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifying = false
	if err != nil {
		// Digits typed while the verify was in flight are kept.
		if c.input == code {
			c.input = ""
		}
		return nil, err
	}
	c.user = resp.User
	return resp, nil
}

// CanResend reports whether a resend may be requested: none is in flight
// and at least a minute has passed since the last code was issued.
func (c *Challenge) CanResend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canResendLocked()
}

func (c *Challenge) canResendLocked() bool {
	return !c.resending && c.timeLeft <= ChallengeSeconds-ResendCooldownSeconds
}

// Resend requests a new code. On success the countdown restarts and the
// input is cleared.
func (c *Challenge) Resend(ctx context.Context) (*MessageResponse, error) {
	c.mu.Lock()
	if !c.canResendLocked() {
		c.mu.Unlock()
		return nil, ErrResendUnavailable
	}
	c.resending = true
	c.mu.Unlock()

	resp, err := c.api.ResendEmail2FA(ctx, c.email)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resending = false
	if err != nil {
		return nil, err
	}
	c.timeLeft = ChallengeSeconds
	c.input = ""
	return resp, nil
}
