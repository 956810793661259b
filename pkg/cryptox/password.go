package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrPasswordMismatch is returned when a password does not match its hash.
	ErrPasswordMismatch = errors.New("cryptox: password does not match")

	// ErrMalformedHash is returned when a stored hash cannot be parsed.
	ErrMalformedHash = errors.New("cryptox: malformed password hash")

	// ErrInvalidParams is returned by Hash when the argon2 parameters cannot
	// produce a hash.
	ErrInvalidParams = errors.New("cryptox: invalid argon2 parameters")
)

// Argon2Params are the argon2id cost parameters written into new hashes.
// Verification always uses the parameters embedded in the stored hash.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  uint32
}

// DefaultArgon2Params follow the OWASP baseline for argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// PasswordHasher hashes and verifies passwords as PHC argon2id strings. The
// pepper is appended to every password and never stored with the hash.
type PasswordHasher struct {
	pepper string
	params Argon2Params
}

func NewPasswordHasher(pepper string) *PasswordHasher {
	return &PasswordHasher{pepper: pepper, params: DefaultArgon2Params}
}

// WithParams returns a copy of h that writes hashes with p.
func (h *PasswordHasher) WithParams(p Argon2Params) *PasswordHasher {
	return &PasswordHasher{pepper: h.pepper, params: p}
}

// Hash returns $argon2id$v=19$m=..,t=..,p=..$salt$hash.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.params.Iterations < 1 || h.params.Parallelism < 1 || h.params.KeyLength < 1 || h.params.SaltLength < 1 {
		return "", ErrInvalidParams
	}
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password+h.pepper), salt,
		h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify returns nil when password matches encoded, ErrPasswordMismatch when
// it does not, and ErrMalformedHash when encoded is not a supported hash.
func (h *PasswordHasher) Verify(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ErrMalformedHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return fmt.Errorf("%w: key", ErrMalformedHash)
	}

	got := argon2.IDKey([]byte(password+h.pepper), salt,
		p.Iterations, p.Memory, p.Parallelism, uint32(len(want))) // #nosec G115 -- decoded key is at most a few dozen bytes

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
