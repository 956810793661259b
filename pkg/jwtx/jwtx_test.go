package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/signin/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const issuer = "signin"

func newSigner(t *testing.T) *jwtx.Signer {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	s, err := jwtx.NewSigner(key)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	s := newSigner(t)
	now := time.Now()
	claims := jwtx.NewSessionClaims(issuer, "user-1", "sess-1", "a@example.com",
		[]string{jwtx.AMRPassword, jwtx.AMROTP, jwtx.AMRMFA}, true, now, now.Add(time.Hour))

	token, err := s.Sign(claims)
	require.NoError(t, err)

	got, err := jwtx.NewVerifier(jwtx.NewKeyRing(s.PublicKey()), issuer).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "sess-1", got.SID)
	require.True(t, got.Persistent)
	require.True(t, got.HasAMR(jwtx.AMRMFA))
	require.False(t, got.HasAMR("hwk"))
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	s := newSigner(t)
	now := time.Now()
	valid := jwtx.NewSessionClaims(issuer, "user-1", "sess-1", "", []string{jwtx.AMRPassword}, false, now, now.Add(time.Hour))
	ring := jwtx.NewKeyRing(s.PublicKey())

	sign := func(c jwtx.SessionClaims) string {
		tok, err := s.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("expired", func(t *testing.T) {
		tok := sign(valid)
		v := jwtx.NewVerifier(ring, issuer, jwtx.WithClock(func() time.Time { return now.Add(2 * time.Hour) }))
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("leeway tolerates skew", func(t *testing.T) {
		tok := sign(valid)
		v := jwtx.NewVerifier(ring, issuer,
			jwtx.WithLeeway(time.Minute),
			jwtx.WithClock(func() time.Time { return now.Add(time.Hour + 30*time.Second) }))
		_, err := v.Verify(tok)
		require.NoError(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := jwtx.NewVerifier(ring, "other").Verify(sign(valid))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := jwtx.NewVerifier(jwtx.NewKeyRing(), issuer).Verify(sign(valid))
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("removed key", func(t *testing.T) {
		r := jwtx.NewKeyRing(s.PublicKey())
		r.Remove(s.KID())
		_, err := jwtx.NewVerifier(r, issuer).Verify(sign(valid))
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(sign(valid), ".")
		other := strings.Split(sign(jwtx.NewSessionClaims(issuer, "user-2", "sess-2", "", nil, false, now, now.Add(time.Hour))), ".")
		forged := parts[0] + "." + other[1] + "." + parts[2]
		_, err := jwtx.NewVerifier(ring, issuer).Verify(forged)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("missing sid", func(t *testing.T) {
		c := valid
		c.SID = ""
		_, err := jwtx.NewVerifier(ring, issuer).Verify(sign(c))
		require.ErrorIs(t, err, jwtx.ErrMissingSID)
	})

	t.Run("hmac token rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, valid)
		tok.Header["kid"] = s.KID()
		str, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = jwtx.NewVerifier(ring, issuer).Verify(str)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwtx.NewVerifier(ring, issuer).Verify("not-a-token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestKeyIDStable(t *testing.T) {
	t.Parallel()

	s := newSigner(t)
	require.Equal(t, s.KID(), jwtx.KeyID(s.PublicKey()))
	require.Equal(t, s.KID(), jwtx.NewKeyRing().Add(s.PublicKey()))

	_, err := jwtx.NewSigner(ed25519.PrivateKey{1, 2, 3})
	require.Error(t, err)
}
