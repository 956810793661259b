package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// KeyRing holds the public keys session tokens may be verified against. Keys
// from a previous signing key can be kept so existing sessions survive a
// rotation.
type KeyRing struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

func NewKeyRing(pubs ...ed25519.PublicKey) *KeyRing {
	kr := &KeyRing{keys: make(map[string]ed25519.PublicKey, len(pubs))}
	for _, pub := range pubs {
		kr.Add(pub)
	}
	return kr
}

// Add registers pub under its KeyID and returns that id.
func (kr *KeyRing) Add(pub ed25519.PublicKey) string {
	kid := KeyID(pub)
	kr.mu.Lock()
	kr.keys[kid] = pub
	kr.mu.Unlock()
	return kid
}

func (kr *KeyRing) Remove(kid string) {
	kr.mu.Lock()
	delete(kr.keys, kid)
	kr.mu.Unlock()
}

func (kr *KeyRing) get(kid string) (ed25519.PublicKey, bool) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	pub, ok := kr.keys[kid]
	return pub, ok
}

// Verifier checks session tokens for signature, issuer, audience and time
// validity.
type Verifier struct {
	keys   *KeyRing
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// VerifierOption customises a Verifier.
type VerifierOption func(*Verifier)

// WithLeeway tolerates clock skew on exp and nbf.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.leeway = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

func NewVerifier(keys *KeyRing, issuer string, opts ...VerifierOption) *Verifier {
	v := &Verifier{keys: keys, issuer: issuer, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify parses token and returns its claims. Errors wrap one of the
// package sentinels.
func (v *Verifier) Verify(token string) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)

	claims := &SessionClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		pub, ok := v.keys.get(kid)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if claims.SID == "" {
		return nil, ErrMissingSID
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return fmt.Errorf("%w: %v", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %v", ErrIssuer, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %v", ErrAudience, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
