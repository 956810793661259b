package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/signin/pkg/authsdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		Auth: AuthConfig{
			Issuer:         "signin-test",
			DatabaseFile:   filepath.Join(dir, "auth.db"),
			PepperFile:     filepath.Join(dir, "pepper"),
			SessionKeyFile: filepath.Join(dir, "session.key"),
			SessionTTL:     time.Hour,
			CookieName:     "signin_session",
		},
		OTP:  OTPConfig{TTL: 5 * time.Minute, Store: OTPStoreMemory},
		SMTP: SMTPConfig{FromName: "Sign-in", TLSPolicy: "mandatory", SendTimeout: time.Second},
		Bootstrap: BootstrapConfig{
			Email:    "admin@example.com",
			Password: "bootstrap-password",
		},
	}
}

func TestNew_SeedsAndServes(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.closeStores() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := authsdk.NewClient(srv.URL)

	resp, err := client.Login(ctx, "admin@example.com", "bootstrap-password", false)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "admin", resp.User.UserName)

	// With email 2FA on, the dev log transport stands in for SMTP.
	_, err = client.ToggleTwoFactor(ctx, true)
	require.NoError(t, err)
	_, err = client.ToggleEmailTwoFactor(ctx, true)
	require.NoError(t, err)

	challenged, err := authsdk.NewClient(srv.URL).Login(ctx, "admin@example.com", "bootstrap-password", false)
	require.NoError(t, err)
	require.True(t, challenged.RequiresEmailTwoFactor)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}

func TestNew_KeepsKeysAndUsersAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	kid := first.signer.KID()

	srv := httptest.NewServer(first.Handler())
	client := authsdk.NewClient(srv.URL)
	_, err = client.Login(context.Background(), "admin@example.com", "bootstrap-password", true)
	require.NoError(t, err)
	srv.Close()
	require.NoError(t, first.closeStores())

	// A different seed password must not replace the existing account.
	cfg.Bootstrap.Password = "something-else"
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.closeStores() })
	require.Equal(t, kid, second.signer.KID())

	srv = httptest.NewServer(second.Handler())
	t.Cleanup(srv.Close)

	// The cookie jar ignores ports, so the session issued before the restart
	// is presented to the new server and still accepted.
	client.BaseURL = srv.URL
	user, err := client.UserData(context.Background())
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", user.Email)

	_, err = authsdk.NewClient(srv.URL).Login(context.Background(), "admin@example.com", "something-else", false)
	require.True(t, authsdk.IsStatus(err, 400))
}

func TestNew_RejectsUnreachableRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.OTP.Store = OTPStoreRedis
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := New(cfg)
	require.ErrorContains(t, err, "redis")
}
