package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/signin/pkg/authsdk"
)

// TestDirectSignIn covers an account without email two-factor: the password
// alone establishes a session.
func TestDirectSignIn(t *testing.T) {
	s := setupStack(t, stackOptions{Env: relaxedLimits})
	ctx := t.Context()

	client := authsdk.NewClient(s.BaseURL)

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Login(ctx, seedEmail, "wrong", false)
		require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "got %v", err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := client.Login(ctx, "nobody@example.com", seedPassword, false)
		require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "got %v", err)
	})

	t.Run("no session yet", func(t *testing.T) {
		_, err := client.UserData(ctx)
		require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "got %v", err)
	})

	t.Run("password signs in", func(t *testing.T) {
		resp, err := client.Login(ctx, seedEmail, seedPassword, true)
		require.NoError(t, err)
		require.True(t, resp.Success)
		require.False(t, resp.RequiresEmailTwoFactor)
		require.NotNil(t, resp.User)
		require.Equal(t, seedEmail, resp.User.Email)
		require.Equal(t, seedUserName, resp.User.UserName)
		require.False(t, resp.User.EmailTwoFactorEnabled)

		user, err := client.UserData(ctx)
		require.NoError(t, err)
		require.Equal(t, resp.User.UserID, user.UserID)
	})

	t.Run("no mail sent", func(t *testing.T) {
		require.Zero(t, s.mailCount(t, seedEmail))
	})

	t.Run("logout ends the session", func(t *testing.T) {
		msg, err := client.Logout(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, msg.Message)

		_, err = client.UserData(ctx)
		require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "got %v", err)
	})
}

// TestToggleSwitches flips both two-factor switches and reads them back.
func TestToggleSwitches(t *testing.T) {
	s := setupStack(t, stackOptions{Env: relaxedLimits})
	ctx := t.Context()

	client := authsdk.NewClient(s.BaseURL)
	_, err := client.Login(ctx, seedEmail, seedPassword, false)
	require.NoError(t, err)

	tfa, err := client.ToggleTwoFactor(ctx, true)
	require.NoError(t, err)
	require.True(t, tfa.TwoFactorEnabled)

	email, err := client.ToggleEmailTwoFactor(ctx, true)
	require.NoError(t, err)
	require.True(t, email.EmailTwoFactorEnabled)

	user, err := client.UserData(ctx)
	require.NoError(t, err)
	require.True(t, user.TwoFactorEnabled)
	require.True(t, user.EmailTwoFactorEnabled)

	email, err = client.ToggleEmailTwoFactor(ctx, false)
	require.NoError(t, err)
	require.False(t, email.EmailTwoFactorEnabled)

	user, err = client.UserData(ctx)
	require.NoError(t, err)
	require.True(t, user.TwoFactorEnabled)
	require.False(t, user.EmailTwoFactorEnabled)
}

// TestEmailChallenge walks the full email two-factor flow through a real
// SMTP server.
func TestEmailChallenge(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts stackOptions
	}{
		{name: "memory code store", opts: stackOptions{Env: relaxedLimits}},
		{name: "redis code store", opts: stackOptions{Env: relaxedLimits, Redis: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := setupStack(t, tc.opts)
			enableEmailTwoFactor(t, s)
			ctx := t.Context()

			client := authsdk.NewClient(s.BaseURL)
			code := startChallenge(t, s, client)

			// The challenge alone grants nothing.
			_, err := client.UserData(ctx)
			require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "got %v", err)

			resp, err := client.VerifyEmail2FA(ctx, seedEmail, code, true)
			require.NoError(t, err)
			require.True(t, resp.Success)
			require.Equal(t, seedEmail, resp.User.Email)

			user, err := client.UserData(ctx)
			require.NoError(t, err)
			require.True(t, user.EmailTwoFactorEnabled)

			// Codes are single use.
			_, err = authsdk.NewClient(s.BaseURL).VerifyEmail2FA(ctx, seedEmail, code, false)
			require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "got %v", err)
		})
	}
}

// TestEmailChallenge_Resend checks that a resend replaces the outstanding
// code.
func TestEmailChallenge_Resend(t *testing.T) {
	s := setupStack(t, stackOptions{Env: relaxedLimits})
	enableEmailTwoFactor(t, s)
	ctx := t.Context()

	client := authsdk.NewClient(s.BaseURL)
	first := startChallenge(t, s, client)

	seen := s.mailCount(t, seedEmail)
	msg, err := client.ResendEmail2FA(ctx, seedEmail)
	require.NoError(t, err)
	require.NotEmpty(t, msg.Message)
	second := s.waitForCode(t, seedEmail, seen)

	if first != second {
		_, err = client.VerifyEmail2FA(ctx, seedEmail, first, false)
		require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "old code must be rejected, got %v", err)
	}

	resp, err := client.VerifyEmail2FA(ctx, seedEmail, second, false)
	require.NoError(t, err)
	require.True(t, resp.Success)
}

// TestEmailChallenge_NotApplicable rejects verify and resend for an account
// that has email two-factor turned off.
func TestEmailChallenge_NotApplicable(t *testing.T) {
	s := setupStack(t, stackOptions{Env: relaxedLimits})
	ctx := t.Context()

	client := authsdk.NewClient(s.BaseURL)

	_, err := client.ResendEmail2FA(ctx, seedEmail)
	require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "got %v", err)

	_, err = client.VerifyEmail2FA(ctx, seedEmail, "123456", false)
	require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "got %v", err)

	require.Zero(t, s.mailCount(t, seedEmail))
}

// TestChallengeAgainstService drives the client-side challenge state machine
// against the running service.
func TestChallengeAgainstService(t *testing.T) {
	s := setupStack(t, stackOptions{Env: relaxedLimits})
	enableEmailTwoFactor(t, s)

	client := authsdk.NewClient(s.BaseURL)
	code := startChallenge(t, s, client)

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Second)
	defer cancel()

	ch, err := authsdk.NewChallenge(client, seedEmail, false)
	require.NoError(t, err)
	go ch.Run(ctx)

	require.Equal(t, "5:00", ch.FormatTimeLeft())
	require.False(t, ch.CanResend())

	// A wrong code is rejected and clears the input.
	resp, err := ch.Enter(ctx, "000000")
	require.Error(t, err)
	require.Nil(t, resp)
	require.Empty(t, ch.Input())

	// A partial code waits for the remaining digits.
	resp, err = ch.Enter(ctx, code[:3])
	require.NoError(t, err)
	require.Nil(t, resp)
	require.Equal(t, code[:3], ch.Input())

	resp, err = ch.Enter(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.True(t, resp.Success)
	require.Equal(t, seedEmail, ch.User().Email)

	me, err := client.UserData(ctx)
	require.NoError(t, err)
	require.Equal(t, ch.User().UserID, me.UserID)
}
